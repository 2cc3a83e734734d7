package cmd

import (
	"fmt"

	"zendex/core"
	"zendex/pkg/kv"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "native settlement currency operations",
}

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "credit native currency to the caller (local faucet)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		amount := core.Currency(cast.ToUint64(args[0]))

		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			return n.currency.Deposit(cmd.Context(), tx, caller(), amount)
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("deposited", amount, "to", caller())
	},
}

var currencyTransferCmd = &cobra.Command{
	Use:   "transfer <target> <amount>",
	Short: "transfer native currency from the caller",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		amount := core.Currency(cast.ToUint64(args[1]))

		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			return n.currency.Transfer(cmd.Context(), tx, caller(), core.Account(args[0]), amount, core.KeepAlive)
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("transferred", amount, "to", args[0])
	},
}

var currencyBalanceCmd = &cobra.Command{
	Use:   "balance [account]",
	Short: "show a native currency balance; defaults to the caller",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		account := caller()
		if len(args) == 1 {
			account = core.Account(args[0])
		}

		err := n.db.View(cmd.Context(), func(tx kv.Transaction) error {
			balance, err := n.currency.Balance(cmd.Context(), tx, account)
			if err != nil {
				return err
			}

			fmt.Println(balance)
			return nil
		})
		if err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(currencyCmd)
	currencyCmd.AddCommand(depositCmd, currencyTransferCmd, currencyBalanceCmd)
}
