package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "investmate/internal/errors"
	"investmate/internal/models"
	"investmate/internal/portfolio"
	"investmate/internal/services"
)

const auditResourceInvestment = "investment"

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	enricher          services.PriceEnricher
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, enricher services.PriceEnricher, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, enricher: enricher, auditService: auditService}
}

// InvestmentRequest is the payload for creating or replacing an investment.
// Shares and buy_price accept JSON numbers or numeric strings.
type InvestmentRequest struct {
	Symbol    string           `json:"symbol" binding:"required,max=32"`
	AssetType models.AssetType `json:"asset_type" binding:"omitempty,asset_type" enums:"Stock,Crypto,ETF"`
	Shares    *decimal.Decimal `json:"shares" binding:"required" swaggertype:"number"`
	BuyPrice  *decimal.Decimal `json:"buy_price" binding:"required" swaggertype:"number"`
	BuyDate   string           `json:"buy_date" binding:"required" example:"2024-01-15"`
	Notes     string           `json:"notes" binding:"max=1000"`
}

// PortfolioResponse carries per-holding figures and the dashboard summary.
type PortfolioResponse struct {
	Holdings []portfolio.Holding `json:"holdings"`
	Summary  portfolio.Summary   `json:"summary"`
}

// parseBuyDate accepts a calendar date or a full RFC 3339 timestamp and
// keeps only the date.
func parseBuyDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid buy_date, expected YYYY-MM-DD")
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// bindInvestment parses the body into the store's field set. A missing
// required field maps to ErrMissingFields.
func bindInvestment(c *gin.Context) (models.InvestmentFields, error) {
	var req InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return models.InvestmentFields{}, apperrors.ErrMissingFields
				}
			}
		}
		return models.InvestmentFields{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	buyDate, err := parseBuyDate(req.BuyDate)
	if err != nil {
		return models.InvestmentFields{}, err
	}

	return models.InvestmentFields{
		Symbol:    req.Symbol,
		AssetType: req.AssetType,
		Shares:    req.Shares,
		BuyPrice:  req.BuyPrice,
		BuyDate:   buyDate,
		Notes:     req.Notes,
	}, nil
}

func auditChanges(inv *models.Investment) map[string]interface{} {
	return map[string]interface{}{
		"symbol":     inv.Symbol,
		"asset_type": string(inv.AssetType),
		"shares":     inv.Shares.String(),
		"buy_price":  inv.BuyPrice.String(),
		"buy_date":   inv.BuyDate.Format(time.DateOnly),
	}
}

// ListInvestments handles listing the caller's investments.
// @Summary     List investments
// @Description List the caller's investments, oldest purchase first, each with a live current price
// @Tags        investments
// @Produce     json
// @Success     200 {array}  models.EnrichedInvestment "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, err := h.investmentService.ListInvestments(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.enricher.EnrichAll(c.Request.Context(), investments))
}

// CreateInvestment handles adding a new investment.
// @Summary     Add investment
// @Description Record a new buy-side position for the caller
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       request body InvestmentRequest true "Investment details"
// @Success     201 {object} models.EnrichedInvestment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := bindInvestment(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.CreateInvestment(c.Request.Context(), userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateInvestment, auditResourceInvestment, investment.ID, c.ClientIP(), auditChanges(investment))

	c.JSON(http.StatusCreated, h.enricher.Enrich(c.Request.Context(), *investment))
}

// UpdateInvestment handles replacing an investment's fields.
// @Summary     Update investment
// @Description Replace every editable field of one of the caller's investments
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Investment ID"
// @Param       request body InvestmentRequest true "Investment details"
// @Success     200 {object} models.EnrichedInvestment "Investment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields, err := bindInvestment(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.UpdateInvestment(c.Request.Context(), userID, investmentID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateInvestment, auditResourceInvestment, investment.ID, c.ClientIP(), auditChanges(investment))

	c.JSON(http.StatusOK, h.enricher.Enrich(c.Request.Context(), *investment))
}

// DeleteInvestment handles removing an investment.
// @Summary     Delete investment
// @Description Delete one of the caller's investments. Deleting a missing record also succeeds.
// @Tags        investments
// @Produce     json
// @Param       id path string true "Investment ID"
// @Success     200 {object} SuccessResponse "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.investmentService.DeleteInvestment(c.Request.Context(), userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if removed {
		h.auditService.Log(userID, services.AuditDeleteInvestment, auditResourceInvestment, investmentID, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetPortfolio handles the dashboard aggregates.
// @Summary     Portfolio summary
// @Description Per-holding figures plus invested, current value, returns and allocation by asset type
// @Tags        investments
// @Produce     json
// @Success     200 {object} PortfolioResponse "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/portfolio [get]
func (h *InvestmentHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, err := h.investmentService.ListInvestments(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	enriched := h.enricher.EnrichAll(c.Request.Context(), investments)
	c.JSON(http.StatusOK, PortfolioResponse{
		Holdings: portfolio.Holdings(enriched),
		Summary:  portfolio.Summarize(enriched),
	})
}
