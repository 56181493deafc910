package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"investmate/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user linked to a unique Google id.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	email := fmt.Sprintf("user%d@test.com", n)
	user := &models.User{
		GoogleID:    fmt.Sprintf("google-%d", n),
		DisplayName: fmt.Sprintf("Test User %d", n),
		Email:       &email,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec is a decimal pointer helper for InvestmentFields.
func Dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// CreateTestInvestment stores an investment for userID directly, bypassing the service.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID, symbol string, assetType models.AssetType, shares, buyPrice string, buyDate time.Time) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:    userID,
		Symbol:    symbol,
		AssetType: assetType,
		Shares:    decimal.RequireFromString(shares),
		BuyPrice:  decimal.RequireFromString(buyPrice),
		BuyDate:   buyDate,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}
