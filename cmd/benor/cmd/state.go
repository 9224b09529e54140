package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/benor/cmd/benor/common"
	benorcommon "boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/consensus"
	"boscoin.io/benor/lib/network"
)

var (
	flagEndpoint    string = benorcommon.GetENVValue("BENOR_ENDPOINT", fmt.Sprintf("http://%s:%d", benorcommon.DefaultHost, benorcommon.DefaultBaseNodePort))
	flagStateOutput string = "prettyjson"
)

var stateCmd *cobra.Command

func init() {
	stateCmd = &cobra.Command{
		Use:   "state",
		Short: "Print the state of a running node",
		Run: func(c *cobra.Command, args []string) {
			if _, ok := common.DefaultEncodes[flagStateOutput]; !ok {
				common.PrintFlagsError(c, "--output", fmt.Errorf("unknown output format, %q", flagStateOutput))
			}
			if flagName, err := parseLogFlags(); err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			state, err := getState(flagEndpoint)
			if err != nil {
				common.PrintError(c, err)
			}

			if err := common.DefaultEncodes[flagStateOutput](state, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	stateCmd.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node")
	stateCmd.Flags().StringVar(&flagStateOutput, "output", flagStateOutput, "output format, {json, prettyjson, yaml}")
	addLogFlags(stateCmd.Flags())

	rootCmd.AddCommand(stateCmd)
}

func getState(endpoint string) (state consensus.NodeState, err error) {
	client := network.NewHTTP2NetworkClient(endpoint, nil)
	defer client.Close()

	var body []byte
	if body, err = client.Get(network.UrlPathGetState); err != nil {
		return
	}

	err = json.Unmarshal(body, &state)

	return
}
