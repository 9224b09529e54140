package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/benor/lib/errors"
	"boscoin.io/benor/lib/voting"
)

// PrintFlagsError prints the error with the usage of the command and exits.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n\n", errorString(err))
	}

	os.Exit(1)
}

func errorString(err error) string {
	if benorError, ok := err.(*errors.Error); ok {
		return benorError.Message
	}

	return err.Error()
}

// ParseValues parses comma separated values, like "0,0,1".
func ParseValues(s string) (values []voting.Value, err error) {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		return
	}

	for _, v := range strings.Split(s, ",") {
		var x voting.Value
		if x, err = voting.ValueFromString(strings.TrimSpace(v)); err != nil {
			return nil, err
		}
		if !x.IsBinary() {
			return nil, errors.InvalidInitialValue.Clone().SetData("value", v)
		}
		values = append(values, x)
	}

	return
}

// ParseIndexes parses comma separated node indexes, like "1,3".
func ParseIndexes(s string) (indexes []int, err error) {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		return
	}

	for _, v := range strings.Split(s, ",") {
		var i int
		if i, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return nil, err
		}
		indexes = append(indexes, i)
	}

	return
}
