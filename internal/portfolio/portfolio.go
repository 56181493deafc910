// Package portfolio computes dashboard aggregates over priced holdings.
// Everything here is pure arithmetic; callers supply the current prices.
package portfolio

import (
	"github.com/shopspring/decimal"

	"investmate/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Allocation is the current market value held in one asset type.
type Allocation struct {
	AssetType models.AssetType `json:"asset_type"`
	Value     decimal.Decimal  `json:"value"`
}

// Summary contains the portfolio-wide totals shown on the dashboard.
type Summary struct {
	Invested       decimal.Decimal `json:"invested"`
	Current        decimal.Decimal `json:"current"`
	ReturnAbsolute decimal.Decimal `json:"return_absolute"`
	ReturnPercent  decimal.Decimal `json:"return_percent"`
	Allocation     []Allocation    `json:"allocation"`
	HoldingsCount  int             `json:"holdings_count"`
	CategoryCount  int             `json:"category_count"`
}

// Holding is one enriched investment with its derived values.
type Holding struct {
	models.EnrichedInvestment
	Cost          decimal.Decimal `json:"cost"`
	Value         decimal.Decimal `json:"value"`
	ReturnPercent decimal.Decimal `json:"return_percent"`
}

// Summarize aggregates enriched investments. Allocation entries keep the
// order in which each asset type first appears in invs.
func Summarize(invs []models.EnrichedInvestment) Summary {
	summary := Summary{
		Invested:   decimal.Zero,
		Current:    decimal.Zero,
		Allocation: []Allocation{},
	}

	index := make(map[models.AssetType]int)
	for i := range invs {
		inv := &invs[i]
		cost := inv.Shares.Mul(inv.BuyPrice)
		value := inv.Shares.Mul(inv.CurrentPrice)

		summary.Invested = summary.Invested.Add(cost)
		summary.Current = summary.Current.Add(value)

		pos, seen := index[inv.AssetType]
		if !seen {
			pos = len(summary.Allocation)
			index[inv.AssetType] = pos
			summary.Allocation = append(summary.Allocation, Allocation{AssetType: inv.AssetType, Value: decimal.Zero})
		}
		summary.Allocation[pos].Value = summary.Allocation[pos].Value.Add(value)
	}

	summary.ReturnAbsolute = summary.Current.Sub(summary.Invested)
	summary.ReturnPercent = percentOf(summary.ReturnAbsolute, summary.Invested)
	summary.HoldingsCount = len(invs)
	summary.CategoryCount = len(summary.Allocation)

	return summary
}

// HoldingReturn is the percent change from buy price to current price,
// or 0 when the buy price is not positive.
func HoldingReturn(inv models.EnrichedInvestment) decimal.Decimal {
	return percentOf(inv.CurrentPrice.Sub(inv.BuyPrice), inv.BuyPrice)
}

// Holdings derives per-holding cost, value and return, preserving order.
func Holdings(invs []models.EnrichedInvestment) []Holding {
	out := make([]Holding, 0, len(invs))
	for _, inv := range invs {
		out = append(out, Holding{
			EnrichedInvestment: inv,
			Cost:               inv.Shares.Mul(inv.BuyPrice),
			Value:              inv.Shares.Mul(inv.CurrentPrice),
			ReturnPercent:      HoldingReturn(inv),
		})
	}
	return out
}

func percentOf(delta, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return delta.Div(base).Mul(hundred)
}
