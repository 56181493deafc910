package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "investmate/internal/errors"
	"investmate/internal/models"
)

// investmentService handles investment persistence scoped by owner.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// normalizeFields validates the required fields and applies write-time
// normalization: uppercase symbol and the Stock default for asset type.
func normalizeFields(fields models.InvestmentFields) (models.InvestmentFields, error) {
	fields.Symbol = strings.ToUpper(strings.TrimSpace(fields.Symbol))
	fields.Notes = strings.TrimSpace(fields.Notes)

	if fields.Symbol == "" || fields.Shares == nil || fields.BuyPrice == nil || fields.BuyDate.IsZero() {
		return fields, apperrors.ErrMissingFields
	}
	if fields.AssetType == "" {
		fields.AssetType = models.AssetTypeStock
	}
	if !fields.AssetType.Valid() {
		return fields, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported asset type")
	}
	return fields, nil
}

func notesValue(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}

// ListInvestments returns the owner's investments, oldest purchase first.
func (s *investmentService) ListInvestments(ctx context.Context, ownerID string) ([]models.Investment, error) {
	investments := []models.Investment{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("buy_date ASC").Order("created_at ASC").
		Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}

// CreateInvestment stores a new investment for the owner.
func (s *investmentService) CreateInvestment(ctx context.Context, ownerID string, fields models.InvestmentFields) (*models.Investment, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	investment := &models.Investment{
		UserID:    ownerID,
		Symbol:    fields.Symbol,
		AssetType: fields.AssetType,
		Shares:    *fields.Shares,
		BuyPrice:  *fields.BuyPrice,
		BuyDate:   fields.BuyDate,
		Notes:     notesValue(fields.Notes),
	}

	if err := s.db.WithContext(ctx).Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// UpdateInvestment replaces every editable field of an investment the owner holds.
func (s *investmentService) UpdateInvestment(ctx context.Context, ownerID, investmentID string, fields models.InvestmentFields) (*models.Investment, error) {
	fields, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	result := db.Model(&models.Investment{}).
		Where("id = ? AND user_id = ?", investmentID, ownerID).
		Updates(map[string]interface{}{
			"symbol":     fields.Symbol,
			"asset_type": fields.AssetType,
			"shares":     *fields.Shares,
			"buy_price":  *fields.BuyPrice,
			"buy_date":   fields.BuyDate,
			"notes":      notesValue(fields.Notes),
		})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrInvestmentNotFound
	}

	var investment models.Investment
	if err := db.Where("id = ? AND user_id = ?", investmentID, ownerID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// DeleteInvestment hard-deletes an investment the owner holds and reports
// whether a row was removed.
func (s *investmentService) DeleteInvestment(ctx context.Context, ownerID, investmentID string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", investmentID, ownerID).
		Delete(&models.Investment{})
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}
