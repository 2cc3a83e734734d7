package cmd

import (
	"fmt"

	"zendex/core"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "pool registry operations",
}

var createExchangeCmd = &cobra.Command{
	Use:   "create <token>",
	Short: "create an exchange pairing the token against the native currency",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		tokenID := core.AssetID(cast.ToUint64(args[0]))

		ex, err := n.exchange.CreateExchange(cmd.Context(), caller(), tokenID)
		if err != nil {
			panic(err)
		}

		fmt.Println("exchange", ex.ID, "created, liquidity asset", ex.LiquidityID, "pool account", ex.Account)
	},
}

var listExchangesCmd = &cobra.Command{
	Use:   "list",
	Short: "list all exchanges",
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		exchanges, err := n.exchange.ListExchanges(cmd.Context())
		if err != nil {
			panic(err)
		}

		for _, ex := range exchanges {
			tokenReserve, err := n.exchange.TokenReserve(cmd.Context(), ex.ID)
			if err != nil {
				panic(err)
			}

			currencyReserve, err := n.exchange.CurrencyReserve(cmd.Context(), ex.ID)
			if err != nil {
				panic(err)
			}

			fmt.Printf("exchange %d token %d liquidity %d reserves %d/%d\n",
				ex.ID, ex.TokenID, ex.LiquidityID, currencyReserve, tokenReserve)
		}
	},
}

var addLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity <token> <currency> <min-liquidity> <max-token> <deadline>",
	Short: "deposit currency and token into the pool for liquidity shares",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.AddLiquidity(
			cmd.Context(),
			caller(),
			core.PoolByAssetID(core.AssetID(cast.ToUint64(args[0]))),
			core.Currency(cast.ToUint64(args[1])),
			core.TokenBalance(cast.ToUint64(args[2])),
			core.TokenBalance(cast.ToUint64(args[3])),
			cast.ToUint64(args[4]),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("liquidity added")
	},
}

var removeLiquidityCmd = &cobra.Command{
	Use:   "remove-liquidity <token> <shares> <min-currency> <min-token> <deadline>",
	Short: "burn liquidity shares for a pro-rata share of the reserves",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		err := n.exchange.RemoveLiquidity(
			cmd.Context(),
			caller(),
			core.PoolByAssetID(core.AssetID(cast.ToUint64(args[0]))),
			core.TokenBalance(cast.ToUint64(args[1])),
			core.Currency(cast.ToUint64(args[2])),
			core.TokenBalance(cast.ToUint64(args[3])),
			cast.ToUint64(args[4]),
		)
		if err != nil {
			panic(err)
		}

		fmt.Println("liquidity removed")
	},
}

func init() {
	rootCmd.AddCommand(exchangeCmd)
	exchangeCmd.AddCommand(createExchangeCmd, listExchangesCmd, addLiquidityCmd, removeLiquidityCmd)
}
