package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/benor/cmd/benor/common"
	"boscoin.io/benor/lib/version"
)

var flagVersionOutput string = "text"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(c *cobra.Command, args []string) {
		if err := printVersion(flagVersionOutput, os.Stdout); err != nil {
			common.PrintFlagsError(c, "--output", err)
		}
	},
}

func init() {
	versionCmd.Flags().StringVar(&flagVersionOutput, "output", flagVersionOutput, "output format, {text, json, prettyjson, yaml}")

	rootCmd.AddCommand(versionCmd)
}

func printVersion(output string, w io.Writer) error {
	info := version.GetInfo()
	if output == "text" {
		_, err := fmt.Fprintln(w, info)
		return err
	}

	encode, ok := common.DefaultEncodes[output]
	if !ok {
		return fmt.Errorf("unknown output format, %q", output)
	}

	return encode(info, w)
}
