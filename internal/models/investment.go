package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is the kind of instrument a holding tracks.
type AssetType string

const (
	AssetTypeStock  AssetType = "Stock"
	AssetTypeCrypto AssetType = "Crypto"
	AssetTypeETF    AssetType = "ETF"
)

// AssetTypes lists the accepted asset types.
var AssetTypes = []AssetType{AssetTypeStock, AssetTypeCrypto, AssetTypeETF}

// Valid reports whether t is one of the accepted asset types.
func (t AssetType) Valid() bool {
	for _, at := range AssetTypes {
		if t == at {
			return true
		}
	}
	return false
}

// Investment is one buy-side position owned by a user.
type Investment struct {
	Base
	UserID    string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol    string          `gorm:"size:32;not null" json:"symbol"`
	AssetType AssetType       `gorm:"size:16;not null;default:'Stock'" json:"asset_type"`
	Shares    decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"shares"`
	BuyPrice  decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"buy_price"`
	BuyDate   time.Time       `gorm:"type:date;not null;index" json:"buy_date"`
	Notes     *string         `json:"notes"`
}

// InvestmentFields is the full set of user-editable columns. Create and
// update both replace every field. Nil amounts mean the caller omitted them.
type InvestmentFields struct {
	Symbol    string
	AssetType AssetType
	Shares    *decimal.Decimal
	BuyPrice  *decimal.Decimal
	BuyDate   time.Time
	Notes     string
}

// EnrichedInvestment is a stored investment plus the price fetched for
// this response. The price is never persisted.
type EnrichedInvestment struct {
	Investment
	CurrentPrice decimal.Decimal `json:"current_price"`
}
