package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "investmate/internal/errors"
	"investmate/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// FindOrCreateByGoogleID returns the user linked to a Google account,
// creating it on first sign-in. Profile fields of existing users are left
// as they were first recorded.
func (s *userService) FindOrCreateByGoogleID(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.ProviderID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "provider id is required")
	}

	var email *string
	if e := strings.TrimSpace(identity.Email); e != "" {
		email = &e
	}

	db := s.db.WithContext(ctx)
	user := &models.User{
		GoogleID:    identity.ProviderID,
		DisplayName: identity.DisplayName,
		Email:       email,
	}

	// Two concurrent first sign-ins race on the unique index; the loser
	// inserts nothing and reads the winner's row below.
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_id"}},
		DoNothing: true,
	}).Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stored models.User
	if err := db.Where("google_id = ?", identity.ProviderID).First(&stored).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stored, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
