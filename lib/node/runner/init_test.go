package runner

import (
	logging "github.com/inconshreveable/log15"
)

func init() {
	SetLogging(logging.LvlDebug, logging.DiscardHandler())
}
