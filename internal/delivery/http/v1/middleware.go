package v1

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDCtxKey = "user_id"

// HandleAuthMiddleware accepts the access token from the Authorization
// header or, failing that, from the access_token cookie.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	accessToken, err := extractAccessToken(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to extract access token")
		abort(c, newUnauthorizedError(err.Error()))
		return
	}

	claims, err := h.auth.ParseJWTToken(accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Warn().Msg("access token expired")
		} else {
			h.logger.Error().
				Err(err).
				Msg("failed to parse token")
		}
		abort(c, newUnauthorizedError(errInvalidToken.Error()))
		return
	}

	c.Set(userIDCtxKey, claims.Subject)
	c.Next()
}

func extractAccessToken(c *gin.Context) (string, error) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header != "" {
		const bearerPrefix = "Bearer"
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
			return "", errInvalidToken
		}
		return parts[1], nil
	}

	token, err := c.Cookie(accessTokenCookie)
	if err != nil || token == "" {
		return "", errMissingToken
	}
	return token, nil
}

func (h *handlerImpl) HandleRequestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	userID, _ := getStringFromContext(c, userIDCtxKey)
	event := h.logger.Info()
	if c.Writer.Status() >= 500 {
		event = h.logger.Error()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Str("user_id", userID).
		Msg("handled request")
}
