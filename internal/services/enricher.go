package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"investmate/internal/models"
	"investmate/internal/quote"
)

// priceEnricher decorates store reads with live prices from a quote.Lookup.
type priceEnricher struct {
	prices quote.Lookup
}

// NewPriceEnricher creates a PriceEnricher backed by the given lookup.
func NewPriceEnricher(prices quote.Lookup) PriceEnricher {
	return &priceEnricher{prices: prices}
}

// Enrich fetches the current price for a single investment.
func (e *priceEnricher) Enrich(ctx context.Context, inv models.Investment) models.EnrichedInvestment {
	price := e.prices.CurrentPrice(ctx, inv.Symbol, inv.AssetType)
	if price < 0 {
		price = 0
	}
	return models.EnrichedInvestment{
		Investment:   inv,
		CurrentPrice: decimal.NewFromFloat(price),
	}
}

// EnrichAll prices every investment concurrently and returns them in
// input order. Lookups never fail, so one slow or broken quote only
// affects its own record.
func (e *priceEnricher) EnrichAll(ctx context.Context, invs []models.Investment) []models.EnrichedInvestment {
	out := make([]models.EnrichedInvestment, len(invs))

	var g errgroup.Group
	for i := range invs {
		g.Go(func() error {
			out[i] = e.Enrich(ctx, invs[i])
			return nil
		})
	}
	_ = g.Wait()

	return out
}
