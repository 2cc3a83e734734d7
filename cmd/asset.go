package cmd

import (
	"fmt"

	"zendex/core"
	"zendex/pkg/kv"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "ledger operations",
}

var issueCmd = &cobra.Command{
	Use:   "issue <name> <symbol> <decimals> <total>",
	Short: "issue a new asset owned by the caller",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		info := core.NewAssetInfo(args[0], args[1], cast.ToUint8(args[2]))
		total := core.TokenBalance(cast.ToUint64(args[3]))

		var assetID core.AssetID
		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			var err error
			assetID, err = n.ledger.Issue(cmd.Context(), tx, caller(), total, info)
			return err
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("asset", assetID, "issued,", formatAmount(total, info.Decimals), info.DisplaySymbol(), "to", caller())
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer <asset> <target> <amount>",
	Short: "transfer assets from the caller to target",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		assetID := core.AssetID(cast.ToUint64(args[0]))
		amount := core.TokenBalance(cast.ToUint64(args[2]))

		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			return n.ledger.Transfer(cmd.Context(), tx, assetID, caller(), core.Account(args[1]), amount)
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("transferred", amount, "of asset", assetID, "to", args[1])
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <asset> <spender> <amount>",
	Short: "allow spender to withdraw from the caller's balance",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		assetID := core.AssetID(cast.ToUint64(args[0]))
		amount := core.TokenBalance(cast.ToUint64(args[2]))

		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			return n.ledger.Approve(cmd.Context(), tx, assetID, caller(), core.Account(args[1]), amount)
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("approved", amount, "of asset", assetID, "for", args[1])
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint <asset> <amount>",
	Short: "mint assets to the caller",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		assetID := core.AssetID(cast.ToUint64(args[0]))
		amount := core.TokenBalance(cast.ToUint64(args[1]))

		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			return n.ledger.Mint(cmd.Context(), tx, assetID, caller(), amount)
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("minted", amount, "of asset", assetID)
	},
}

var burnCmd = &cobra.Command{
	Use:   "burn <asset> <amount>",
	Short: "burn assets from the caller",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		assetID := core.AssetID(cast.ToUint64(args[0]))
		amount := core.TokenBalance(cast.ToUint64(args[1]))

		err := n.db.Update(cmd.Context(), func(tx kv.Transaction) error {
			return n.ledger.Burn(cmd.Context(), tx, assetID, caller(), amount)
		})
		if err != nil {
			panic(err)
		}

		fmt.Println("burned", amount, "of asset", assetID)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <asset> [account]",
	Short: "show an account balance; defaults to the caller",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		assetID := core.AssetID(cast.ToUint64(args[0]))
		account := caller()
		if len(args) == 2 {
			account = core.Account(args[1])
		}

		err := n.db.View(cmd.Context(), func(tx kv.Transaction) error {
			balance, err := n.ledger.BalanceOf(cmd.Context(), tx, assetID, account)
			if err != nil {
				return err
			}

			info, err := n.ledger.AssetInfo(cmd.Context(), tx, assetID)
			if err != nil {
				return err
			}

			if info != nil {
				fmt.Println(formatAmount(balance, info.Decimals), info.DisplaySymbol())
			} else {
				fmt.Println(balance)
			}

			return nil
		})
		if err != nil {
			panic(err)
		}
	},
}

var supplyCmd = &cobra.Command{
	Use:   "supply <asset>",
	Short: "show the total supply of an asset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n := provideNode()
		defer n.Close()

		assetID := core.AssetID(cast.ToUint64(args[0]))

		err := n.db.View(cmd.Context(), func(tx kv.Transaction) error {
			supply, err := n.ledger.TotalSupply(cmd.Context(), tx, assetID)
			if err != nil {
				return err
			}

			fmt.Println(supply)
			return nil
		})
		if err != nil {
			panic(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(assetCmd)
	assetCmd.AddCommand(issueCmd, transferCmd, approveCmd, mintCmd, burnCmd, balanceCmd, supplyCmd)
}
