package cmd

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "logical clock operations",
}

var heightCmd = &cobra.Command{
	Use:   "height",
	Short: "show the current logical height",
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		height, err := n.chain.Height(cmd.Context())
		if err != nil {
			panic(err)
		}

		fmt.Println(height)
	},
}

var advanceCmd = &cobra.Command{
	Use:   "advance [n]",
	Short: "advance the logical clock",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		steps := uint64(1)
		if len(args) == 1 {
			steps = cast.ToUint64(args[0])
		}

		height, err := n.chain.Advance(cmd.Context(), steps)
		if err != nil {
			panic(err)
		}

		fmt.Println(height)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.AddCommand(heightCmd, advanceCmd)
}
