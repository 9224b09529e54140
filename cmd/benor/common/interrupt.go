package common

import (
	"os"
	"os/signal"
	"syscall"

	"boscoin.io/benor/lib/errors"
)

// Interrupt waits for SIGINT or SIGTERM and returns `errors.Interrupted`
// with the signal. It returns nil once `cancel` is closed, which happens
// when the simulation ended by itself.
func Interrupt(cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return errors.Interrupted.Clone().SetData("signal", sig.String())
	case <-cancel:
		return nil
	}
}
