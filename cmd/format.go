package cmd

import (
	"math/big"

	"zendex/core"

	"github.com/shopspring/decimal"
)

// formatAmount renders a raw balance in human units using the asset's
// decimals.
func formatAmount(amount core.TokenBalance, decimals uint8) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(amount)), -int32(decimals))
	return d.String()
}
