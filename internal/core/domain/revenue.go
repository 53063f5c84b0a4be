package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Revenue struct {
	Timeframe Timeframe
	Amount    float64
}

// SumRevenue adds quantity times unit price over all lines.
//
// The price is the product price at computation time, there is no price
// history. A line without a product fails the whole sum with
// [ErrDanglingSale].
func SumRevenue(lines []SaleLine) (float64, error) {
	total := decimal.Zero
	for _, l := range lines {
		if !l.ProductFound {
			return 0, fmt.Errorf(
				"%w: sale_id=%d product_id=%d", ErrDanglingSale, l.SaleID, l.ProductID,
			)
		}
		line := decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64(), nil
}
