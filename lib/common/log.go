package common

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"

	logging "github.com/inconshreveable/log15"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

const logFormatErrorKey = "LOG15_ERROR"

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// NodeContext is the logging context of the node `index`; every logger of a
// node carries it, so the lines of one node can be filtered out of a
// simulation.
func NodeContext(index int) logging.Ctx {
	return logging.Ctx{"node": index}
}

// jsonLogValue turns a context value into something `encoding/json` writes
// as expected: envelopes, states and coded errors keep their own encoding.
func jsonLogValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}

	switch v := value.(type) {
	case json.Marshaler:
		return v
	case Serializable:
		b, err := v.Serialize()
		if err != nil {
			return err.Error()
		}
		return json.RawMessage(b)
	case time.Time:
		return FormatISO8601(v)
	case time.Duration:
		return v.String()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	return value
}

// JsonFormatEx formats the records as JSON objects, one per line when
// `lineSeparated` is set.
func JsonFormatEx(pretty, lineSeparated bool) logging.Format {
	marshal := json.Marshal
	if pretty {
		marshal = func(v interface{}) ([]byte, error) {
			return json.MarshalIndent(v, "", "    ")
		}
	}

	return logging.FormatFunc(func(r *logging.Record) []byte {
		props := map[string]interface{}{
			r.KeyNames.Time: FormatISO8601(r.Time),
			r.KeyNames.Lvl:  r.Lvl.String(),
			r.KeyNames.Msg:  r.Msg,
		}

		for i := 0; i < len(r.Ctx); i += 2 {
			k := fmt.Sprint(r.Ctx[i])
			if i+1 == len(r.Ctx) {
				props[logFormatErrorKey] = fmt.Sprintf("no value for key %q", k)
				break
			}
			props[k] = jsonLogValue(r.Ctx[i+1])
		}

		b, err := marshal(props)
		if err != nil {
			b, _ = marshal(map[string]string{logFormatErrorKey: err.Error()})
		}
		if lineSeparated {
			b = append(b, '\n')
		}

		return b
	})
}
