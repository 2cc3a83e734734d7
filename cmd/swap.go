package cmd

import (
	"fmt"

	"zendex/core"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "constant-product swap operations",
}

var recipientFlag string

// recipient of the bought side; defaults to the caller
func recipient() core.Account {
	if recipientFlag != "" {
		return core.Account(recipientFlag)
	}

	return caller()
}

func poolArg(arg string) core.PoolRef {
	return core.PoolByAssetID(core.AssetID(cast.ToUint64(arg)))
}

var buyTokenCmd = &cobra.Command{
	Use:   "buy-token <token> <currency-sold> <min-token> <deadline>",
	Short: "sell an exact amount of currency for at least min-token",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.CurrencyToTokenInput(
			cmd.Context(), caller(), poolArg(args[0]),
			core.Currency(cast.ToUint64(args[1])),
			core.TokenBalance(cast.ToUint64(args[2])),
			cast.ToUint64(args[3]), recipient(),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("swap done")
	},
}

var buyTokenExactCmd = &cobra.Command{
	Use:   "buy-token-exact <token> <tokens-bought> <max-currency> <deadline>",
	Short: "buy an exact amount of token for at most max-currency",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.CurrencyToTokenOutput(
			cmd.Context(), caller(), poolArg(args[0]),
			core.TokenBalance(cast.ToUint64(args[1])),
			core.Currency(cast.ToUint64(args[2])),
			cast.ToUint64(args[3]), recipient(),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("swap done")
	},
}

var buyCurrencyCmd = &cobra.Command{
	Use:   "buy-currency <token> <token-sold> <min-currency> <deadline>",
	Short: "sell an exact amount of token for at least min-currency",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.TokenToCurrencyInput(
			cmd.Context(), caller(), poolArg(args[0]),
			core.TokenBalance(cast.ToUint64(args[1])),
			core.Currency(cast.ToUint64(args[2])),
			cast.ToUint64(args[3]), recipient(),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("swap done")
	},
}

var buyCurrencyExactCmd = &cobra.Command{
	Use:   "buy-currency-exact <token> <currency-bought> <max-token> <deadline>",
	Short: "buy an exact amount of currency for at most max-token",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.TokenToCurrencyOutput(
			cmd.Context(), caller(), poolArg(args[0]),
			core.Currency(cast.ToUint64(args[1])),
			core.TokenBalance(cast.ToUint64(args[2])),
			cast.ToUint64(args[3]), recipient(),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("swap done")
	},
}

var buyOtherTokenCmd = &cobra.Command{
	Use:   "buy-other-token <token> <other-token> <token-sold> <min-other-token> <deadline>",
	Short: "sell an exact amount of token for at least min-other-token, routed through two pools",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.TokenToTokenInput(
			cmd.Context(), caller(), poolArg(args[0]), poolArg(args[1]),
			core.TokenBalance(cast.ToUint64(args[2])),
			core.TokenBalance(cast.ToUint64(args[3])),
			cast.ToUint64(args[4]), recipient(),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("swap done")
	},
}

var buyOtherTokenExactCmd = &cobra.Command{
	Use:   "buy-other-token-exact <token> <other-token> <other-token-bought> <max-token> <deadline>",
	Short: "buy an exact amount of the other token for at most max-token, routed through two pools",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.TokenToTokenOutput(
			cmd.Context(), caller(), poolArg(args[0]), poolArg(args[1]),
			core.TokenBalance(cast.ToUint64(args[2])),
			core.TokenBalance(cast.ToUint64(args[3])),
			cast.ToUint64(args[4]), recipient(),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("swap done")
	},
}

func init() {
	rootCmd.AddCommand(swapCmd)
	swapCmd.PersistentFlags().StringVar(&recipientFlag, "recipient", "", "receiver of the bought side. default is the caller")
	swapCmd.AddCommand(
		buyTokenCmd, buyTokenExactCmd,
		buyCurrencyCmd, buyCurrencyExactCmd,
		buyOtherTokenCmd, buyOtherTokenExactCmd,
	)
}
