package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "investmate/internal/errors"
	"investmate/internal/logger"
	"investmate/internal/session"
	"investmate/internal/uuid"
)

const (
	// SessionCookie carries the opaque session id.
	SessionCookie = "investmate_session"
	// StateCookie binds an OAuth round trip to the browser that started it.
	StateCookie = "investmate_oauth_state"

	stateTokenExpiry = 10 * time.Minute
	stateTokenType   = "oauth_state"
	tokenIssuer      = "investmate-api"

	userIDKey    = "userID"
	sessionIDKey = "sessionID"
)

// StateClaims represents the claims of a signed OAuth state parameter.
type StateClaims struct {
	Nonce     string `json:"nonce"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateStateToken signs a fresh state token. The returned nonce is also
// stored in StateCookie so the callback can match the two.
func GenerateStateToken(secret string) (token, nonce string, err error) {
	now := time.Now()
	nonce = uuid.NewToken()
	claims := &StateClaims{
		Nonce:     nonce,
		TokenType: stateTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("signing state token: %w", err)
	}
	return token, nonce, nil
}

// ValidateStateToken parses a state token and checks it carries nonce.
func ValidateStateToken(secret, tokenString, nonce string) error {
	claims := &StateClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil || !token.Valid {
		return fmt.Errorf("invalid state token")
	}
	if claims.TokenType != stateTokenType {
		return fmt.Errorf("token is not a state token")
	}
	if nonce == "" || claims.Nonce != nonce {
		return fmt.Errorf("state nonce mismatch")
	}
	return nil
}

// Session resolves the session cookie and, when it maps to a live session,
// puts the user and session ids on the context. It never aborts; use
// RequireUser on routes that need a signed-in caller.
func Session(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		userID, err := store.UserID(c.Request.Context(), sessionID)
		switch {
		case err == nil:
			c.Set(userIDKey, userID)
			c.Set(sessionIDKey, sessionID)
		case errors.Is(err, session.ErrNotFound):
		default:
			logger.Get().Warnw("session lookup failed",
				"error", err.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.Next()
	}
}

// RequireUser rejects requests without an authenticated user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(userIDKey); !ok {
			WriteError(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by Session.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// SessionID returns the current session id set by Session.
func SessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
