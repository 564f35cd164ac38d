package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthEntity is the payer identity carried in a validated token. EntityID is
// the owning-entity reference customers are linked to.
type AuthEntity struct {
	EntityID uuid.UUID `json:"entity_id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// contextKey is used for storing the entity in context
type contextKey string

const (
	entityContextKey contextKey = "authenticated_entity"
)

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware creates a middleware that validates HMAC bearer tokens
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})

			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
				subject, _ := claims["sub"].(string)
				entityID, err := uuid.Parse(subject)
				if err != nil {
					config.Logger.Warn("Invalid subject claim",
						zap.String("sub", subject),
						zap.String("path", path),
						zap.Error(err))
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Token subject must be a valid UUID",
						"code":  "INVALID_SUBJECT",
					})
				}

				email, _ := claims["email"].(string)
				role, _ := claims["role"].(string)

				entity := &AuthEntity{
					EntityID: entityID,
					Email:    email,
					Role:     role,
				}

				ctx := context.WithValue(c.Request().Context(), entityContextKey, entity)
				c.SetRequest(c.Request().WithContext(ctx))
				c.Set("entity_id", entityID.String())

				return next(c)
			}

			config.Logger.Warn("Invalid JWT claims",
				zap.String("path", path))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Invalid token claims",
				"code":  "INVALID_CLAIMS",
			})
		}
	}
}

// GetEntityFromContext extracts the authenticated entity from the request context
func GetEntityFromContext(c echo.Context) (*AuthEntity, error) {
	entity, ok := c.Request().Context().Value(entityContextKey).(*AuthEntity)
	if !ok || entity == nil {
		return nil, fmt.Errorf("no authenticated entity found in context")
	}
	return entity, nil
}

// RequireAuth is a helper function to get the entity or return an error response
func RequireAuth(c echo.Context) (*AuthEntity, error) {
	entity, err := GetEntityFromContext(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authentication required",
			"code":  "AUTH_REQUIRED",
		})
	}
	return entity, nil
}
