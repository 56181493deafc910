package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidateAssetType(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("asset_type", validateAssetType); err != nil {
		t.Fatalf("RegisterValidation() error = %v", err)
	}

	type body struct {
		AssetType string `validate:"omitempty,asset_type"`
	}

	tests := []struct {
		value string
		valid bool
	}{
		{"Stock", true},
		{"Crypto", true},
		{"ETF", true},
		{"", true},
		{"stock", false},
		{"Bond", false},
		{"REIT", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := v.Struct(body{AssetType: tt.value})
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.value, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to be rejected", tt.value)
			}
		})
	}
}
