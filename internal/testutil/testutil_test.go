package testutil_test

import (
	"testing"

	apperrors "investmate/internal/errors"
	"investmate/internal/models"
	"investmate/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "investments", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected second database to be empty, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a generated ID")
	}
	if user.Email == nil || *user.Email == "" {
		t.Error("user should have an email")
	}

	inv := testutil.CreateTestInvestment(t, db, user.ID, "AAPL", models.AssetTypeStock, "10", "150", testutil.Date(2023, 1, 1))
	if inv.ID == "" {
		t.Fatal("investment should have a generated ID")
	}

	var stored models.Investment
	if err := db.First(&stored, "id = ?", inv.ID).Error; err != nil {
		t.Fatalf("failed to reload investment: %v", err)
	}
	if !stored.Shares.Equal(*testutil.Dec("10")) {
		t.Errorf("expected 10 shares, got %s", stored.Shares)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, apperrors.ErrInvestmentNotFound, "INVESTMENT_NOT_FOUND")
	testutil.AssertAppError(t, apperrors.Wrap(apperrors.ErrInternalServer, nil), "INTERNAL_ERROR")
	testutil.AssertNoError(t, nil)
}
