package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "investmate/internal/errors"
	"investmate/internal/identity"
	"investmate/internal/logger"
	"investmate/internal/middleware"
	"investmate/internal/models"
	"investmate/internal/services"
	"investmate/internal/session"
)

const (
	failurePath    = "/auth/failure"
	stateCookieTTL = 10 * time.Minute
)

// AuthConfig carries the settings the sign-in flow needs.
type AuthConfig struct {
	StateSecret   string
	ClientOrigin  string
	SessionTTL    time.Duration
	SecureCookies bool
}

// AuthHandler drives the Google sign-in round trip and session lifecycle.
type AuthHandler struct {
	userService services.UserServicer
	provider    identity.Provider
	sessions    session.Store
	cfg         AuthConfig
	log         *zap.SugaredLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, provider identity.Provider, sessions session.Store, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		provider:    provider,
		sessions:    sessions,
		cfg:         cfg,
		log:         logger.Named("auth"),
	}
}

// UserEnvelope wraps the current user, which is null when signed out.
type UserEnvelope struct {
	User *models.User `json:"user"`
}

// AuthFailureResponse is the body of the sign-in failure page.
type AuthFailureResponse struct {
	Error string `json:"error"`
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cfg.SecureCookies, true)
}

func (h *AuthHandler) fail(c *gin.Context, reason string, err error) {
	fields := []interface{}{"reason", reason}
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	h.log.Warnw("google sign-in failed", fields...)
	c.Redirect(http.StatusFound, failurePath)
}

// GoogleLogin starts the sign-in flow.
// @Summary     Sign in with Google
// @Description Redirects to the Google consent page with a signed state parameter
// @Tags        auth
// @Success     307 "Redirect to Google"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, nonce, err := middleware.GenerateStateToken(h.cfg.StateSecret)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.setCookie(c, middleware.StateCookie, nonce, int(stateCookieTTL.Seconds()))
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// GoogleCallback completes the sign-in flow.
// @Summary     Google sign-in callback
// @Description Validates state, exchanges the code, finds or creates the user and starts a session
// @Tags        auth
// @Param       state query string true "Signed state"
// @Param       code  query string true "Authorization code"
// @Success     302 "Redirect to the client on success or to /auth/failure"
// @Router      /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	nonce, _ := c.Cookie(middleware.StateCookie)
	h.setCookie(c, middleware.StateCookie, "", -1)

	if providerErr := c.Query("error"); providerErr != "" {
		h.fail(c, "provider_error", errors.New(providerErr))
		return
	}
	if err := middleware.ValidateStateToken(h.cfg.StateSecret, c.Query("state"), nonce); err != nil {
		h.fail(c, "invalid_state", err)
		return
	}
	code := c.Query("code")
	if code == "" {
		h.fail(c, "missing_code", nil)
		return
	}

	ident, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.fail(c, "exchange", err)
		return
	}

	user, err := h.userService.FindOrCreateByGoogleID(c.Request.Context(), ident)
	if err != nil {
		h.fail(c, "user_store", err)
		return
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, "session_store", err)
		return
	}

	h.setCookie(c, middleware.SessionCookie, sessionID, int(h.cfg.SessionTTL.Seconds()))
	h.log.Infow("user signed in", "user_id", user.ID)
	c.Redirect(http.StatusFound, h.cfg.ClientOrigin)
}

// Logout ends the current session.
// @Summary     Sign out
// @Description Destroys the session, clears the cookie and redirects to the client
// @Tags        auth
// @Success     302 "Redirect to the client"
// @Router      /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, ok := middleware.SessionID(c); ok {
		if err := h.sessions.Destroy(c.Request.Context(), sessionID); err != nil {
			h.log.Errorw("failed to destroy session", "error", err.Error())
		}
	}
	h.setCookie(c, middleware.SessionCookie, "", -1)
	c.Redirect(http.StatusFound, h.cfg.ClientOrigin)
}

// Failure reports a failed sign-in.
// @Summary     Sign-in failure
// @Tags        auth
// @Produce     json
// @Failure     401 {object} AuthFailureResponse "Google auth failed"
// @Router      /auth/failure [get]
func (h *AuthHandler) Failure(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, AuthFailureResponse{Error: apperrors.ErrAuthFailed.Message})
}

// Me returns the signed-in user.
// @Summary     Current user
// @Description Returns the signed-in user, or null with 401 when signed out
// @Tags        auth
// @Produce     json
// @Success     200 {object} UserEnvelope "Current user"
// @Failure     401 {object} UserEnvelope "Signed out"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, UserEnvelope{})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, UserEnvelope{})
		return
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserEnvelope{User: user})
}
