package services

import (
	"context"

	"investmate/internal/models"
)

// Identity is the profile returned by the external identity provider.
type Identity struct {
	ProviderID  string
	DisplayName string
	Email       string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	FindOrCreateByGoogleID(ctx context.Context, identity Identity) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// InvestmentServicer is the ownership-scoped investment store. Every
// operation takes the owner id explicitly; rows belonging to someone else
// behave exactly like rows that do not exist.
type InvestmentServicer interface {
	ListInvestments(ctx context.Context, ownerID string) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, ownerID string, fields models.InvestmentFields) (*models.Investment, error)
	UpdateInvestment(ctx context.Context, ownerID, investmentID string, fields models.InvestmentFields) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, ownerID, investmentID string) (bool, error)
}

// PriceEnricher attaches freshly fetched current prices to stored investments.
type PriceEnricher interface {
	Enrich(ctx context.Context, inv models.Investment) models.EnrichedInvestment
	EnrichAll(ctx context.Context, invs []models.Investment) []models.EnrichedInvestment
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
