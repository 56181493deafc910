package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAssetType_Valid(t *testing.T) {
	tests := []struct {
		in   AssetType
		want bool
	}{
		{AssetTypeStock, true},
		{AssetTypeCrypto, true},
		{AssetTypeETF, true},
		{"stock", false},
		{"Bond", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.want {
			t.Errorf("AssetType(%q).Valid() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnrichedInvestment_JSON(t *testing.T) {
	inv := EnrichedInvestment{
		Investment: Investment{
			Base:      Base{ID: "0190a8b2-0000-7000-8000-000000000001"},
			UserID:    "0190a8b2-0000-7000-8000-000000000002",
			Symbol:    "AAPL",
			AssetType: AssetTypeStock,
			Shares:    decimal.NewFromInt(10),
			BuyPrice:  decimal.RequireFromString("150.25"),
			BuyDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		CurrentPrice: decimal.RequireFromString("172.5"),
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out["symbol"] != "AAPL" {
		t.Errorf("symbol = %v, want AAPL", out["symbol"])
	}
	if out["shares"] != float64(10) {
		t.Errorf("shares = %v (%T), want number 10", out["shares"], out["shares"])
	}
	if out["current_price"] != 172.5 {
		t.Errorf("current_price = %v, want 172.5", out["current_price"])
	}
	if out["notes"] != nil {
		t.Errorf("notes = %v, want null", out["notes"])
	}
	if _, ok := out["user_id"]; !ok {
		t.Error("expected embedded user_id to be flattened into the record")
	}
}
