package cmd

import (
	"os"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	benorcommon "boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/network"
	"boscoin.io/benor/lib/node/runner"
	"boscoin.io/benor/lib/node/supervisor"
)

const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagLogLevel  string = benorcommon.GetENVValue("BENOR_LOG_LEVEL", defaultLogLevel.String())
	flagLogFormat string = benorcommon.GetENVValue("BENOR_LOG_FORMAT", "")
	flagLogOutput string = benorcommon.GetENVValue("BENOR_LOG_OUTPUT", "")
)

var (
	logLevel logging.Lvl
	log      logging.Logger = logging.New("module", "main")
)

func addLogFlags(flags *pflag.FlagSet) {
	flags.StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	flags.StringVar(&flagLogFormat, "log-format", flagLogFormat, "log format, {terminal, json}; by default terminal if stdout is a terminal")
	flags.StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
}

// parseLogFlags returns the name of the invalid flag with the error.
func parseLogFlags() (string, error) {
	var err error
	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return "--log-level", err
	}

	var formatter logging.Format
	switch flagLogFormat {
	case "terminal":
		formatter = logging.TerminalFormat()
	case "json":
		formatter = benorcommon.JsonFormatEx(false, true)
	case "":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			formatter = logging.TerminalFormat()
		} else {
			formatter = benorcommon.JsonFormatEx(false, true)
		}
	default:
		return "--log-format", errUnknownLogFormat
	}

	logHandler := logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, benorcommon.JsonFormatEx(false, true)); err != nil {
			return "--log-output", err
		}
	}

	if logLevel == logging.LvlDebug {
		logHandler = logging.CallerFileHandler(logHandler)
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	benorcommon.SetLogging(logLevel, logHandler)
	consensus.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
	supervisor.SetLogging(logLevel, logHandler)

	return "", nil
}
