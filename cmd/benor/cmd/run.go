package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"
	"golang.org/x/net/http2"

	"boscoin.io/benor/cmd/benor/common"
	benorcommon "boscoin.io/benor/lib/common"
	benorerrors "boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/metrics"
	"boscoin.io/benor/lib/node/supervisor"
	"boscoin.io/benor/lib/storage"
	"boscoin.io/benor/lib/voting"
)

var errUnknownLogFormat = errors.New("unknown log format")

var (
	flagFaultyNodes  string = benorcommon.GetENVValue("BENOR_FAULTY_NODES", "")
	flagValues       string = benorcommon.GetENVValue("BENOR_VALUES", "")
	flagOutput       string = benorcommon.GetENVValue("BENOR_OUTPUT", "prettyjson")
	flagRateLimitAPI string = benorcommon.GetENVValue("BENOR_RATE_LIMIT_ADMIN", "")
	flagVerbose      bool   = benorcommon.GetENVValue("BENOR_VERBOSE", "0") == "1"
	flagStorage      string = benorcommon.GetENVValue("BENOR_STORAGE", "")
	flagKeepRunning  bool
	flagTimeout      time.Duration
)

var (
	runCmd *cobra.Command

	conf          benorcommon.Config = benorcommon.NewConfig()
	faultyNodes   []int
	values        []voting.Value
	storageConfig *storage.Config
)

func init() {
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a consensus simulation",
		Run: func(c *cobra.Command, args []string) {
			parseFlagsRun()

			if err := runSimulation(); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	flags := runCmd.Flags()
	flags.IntVar(&conf.Nodes, "nodes", conf.Nodes, "number of nodes")
	flags.IntVar(&conf.Faulty, "faulty", conf.Faulty, "number of tolerated faulty nodes; nodes must be greater than 3 * faulty")
	flags.StringVar(&flagFaultyNodes, "faulty-nodes", flagFaultyNodes, "indexes of the faulty nodes, like '1,3'")
	flags.StringVar(&flagValues, "values", flagValues, "initial values of the nodes, like '0,0,1'; one per node or one per live node. By default random")
	flags.StringVar(&conf.Transport, "transport", conf.Transport, "transport between nodes, {memory, http}")
	flags.StringVar(&conf.Codec, "codec", conf.Codec, "codec of the memory transport, {msgpack, json}")
	flags.StringVar(&conf.Coin, "coin", conf.Coin, "coin, {crypto, seeded}")
	flags.Int64Var(&conf.CoinSeed, "coin-seed", conf.CoinSeed, "seed of the seeded coin; node i uses seed + i")
	flags.StringVar(&conf.Host, "host", conf.Host, "host of the http transport")
	flags.IntVar(&conf.BaseNodePort, "base-port", conf.BaseNodePort, "node i listens on base-port + i; 0 picks free ports")
	flags.IntVar(&conf.SendAttempts, "send-attempts", conf.SendAttempts, "attempts to send one envelope over http; more than 1 retries")
	flags.DurationVar(&conf.SendTimeout, "send-timeout", conf.SendTimeout, "timeout to send one envelope over http")
	flags.StringVar(&flagRateLimitAPI, "rate-limit-admin", flagRateLimitAPI, "rate limit of the admin routes, like '200-S'")
	flags.StringVar(&flagOutput, "output", flagOutput, "output format, {json, prettyjson, yaml}")
	flags.StringVar(&flagStorage, "storage", flagStorage, "save the report in the storage, like 'file:///tmp/benor'")
	flags.DurationVar(&flagTimeout, "timeout", flagTimeout, "give up waiting for the decisions after timeout; 0 waits forever")
	flags.BoolVar(&flagKeepRunning, "keep-running", flagKeepRunning, "keep serving the admin routes of the nodes after the decisions until interrupted")
	flags.BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	addLogFlags(flags)

	rootCmd.AddCommand(runCmd)
}

func parseFlagsRun() {
	var err error

	if faultyNodes, err = common.ParseIndexes(flagFaultyNodes); err != nil {
		common.PrintFlagsError(runCmd, "--faulty-nodes", err)
	}
	if values, err = common.ParseValues(flagValues); err != nil {
		common.PrintFlagsError(runCmd, "--values", err)
	}
	if _, ok := common.DefaultEncodes[flagOutput]; !ok {
		common.PrintFlagsError(runCmd, "--output", fmt.Errorf("unknown output format, %q", flagOutput))
	}
	if len(flagRateLimitAPI) > 0 {
		rate, err := limiter.NewRateFromFormatted(flagRateLimitAPI)
		if err != nil {
			common.PrintFlagsError(runCmd, "--rate-limit-admin", err)
		}
		conf.RateLimitRuleAdmin = benorcommon.NewRateLimitRule(rate)
	}
	if len(flagStorage) > 0 {
		if storageConfig, err = storage.NewConfigFromString(flagStorage); err != nil {
			common.PrintFlagsError(runCmd, "--storage", err)
		}
	}
	if flagName, err := parseLogFlags(); err != nil {
		common.PrintFlagsError(runCmd, flagName, err)
	}

	log.Info("Starting Ben-Or simulation")

	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnodes", conf.Nodes)
	parsedFlags = append(parsedFlags, "\n\tfaulty", conf.Faulty)
	parsedFlags = append(parsedFlags, "\n\tfaulty-nodes", faultyNodes)
	parsedFlags = append(parsedFlags, "\n\tvalues", values)
	parsedFlags = append(parsedFlags, "\n\ttransport", conf.Transport)
	parsedFlags = append(parsedFlags, "\n\tcodec", conf.Codec)
	parsedFlags = append(parsedFlags, "\n\tcoin", conf.Coin)
	parsedFlags = append(parsedFlags, "\n\tbase-port", conf.BaseNodePort)
	parsedFlags = append(parsedFlags, "\n\tsend-attempts", conf.SendAttempts)
	parsedFlags = append(parsedFlags, "\n\trate-limit-admin", conf.RateLimitRuleAdmin.Default)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorage)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

func runSimulation() error {
	metrics.InitPrometheusMetrics()

	var st *storage.LevelDBBackend
	if storageConfig != nil {
		var err error
		if st, err = storage.NewStorage(storageConfig); err != nil {
			return err
		}
		defer st.Close()
	}

	s, err := supervisor.NewSupervisor(conf, faultyNodes, values)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var finished bool

	var g run.Group
	{
		g.Add(func() error {
			report, err := simulate(ctx, s, flagTimeout)
			if err != nil {
				return err
			}

			if st != nil {
				if err := report.Save(st); err != nil {
					return err
				}
				log.Debug("report saved", "key", report.Key(), "storage", st.Config())
			}

			if err := common.DefaultEncodes[flagOutput](report, os.Stdout); err != nil {
				return err
			}

			finished = true
			if flagKeepRunning {
				<-ctx.Done()
			}

			return nil
		}, func(error) {
			cancel()
		})
	}
	{
		interrupt := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(interrupt)
		}, func(error) {
			close(interrupt)
		})
	}

	// an interrupt after the report is printed only ends `--keep-running`
	if err := g.Run(); err != nil && !(finished && benorerrors.Is(err, benorerrors.Interrupted)) {
		return err
	}

	return nil
}

// simulate starts the consensus on every node and waits for the decisions.
// With a positive timeout, the nodes which did not decide yet are reported
// as they are.
func simulate(ctx context.Context, s *supervisor.Supervisor, timeout time.Duration) (*supervisor.Report, error) {
	started := time.Now()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := s.StartAll(ctx); err != nil {
		return nil, err
	}

	if err := s.WaitDecided(ctx); err != nil {
		if err != context.DeadlineExceeded {
			return nil, err
		}
		log.Warn("timed out before every node decided", "timeout", timeout)
	}

	s.StopAll()

	report := s.Report(started)
	log.Debug("simulation finished", "decisions", s.Decisions(), "elapsed", report.Elapsed)

	return &report, nil
}
