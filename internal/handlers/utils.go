package handlers

import (
	"fmt"
	"strings"

	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getSessionFromContext builds the service session from the authenticated
// request context. The auth middleware is responsible for setting both keys.
func getSessionFromContext(c echo.Context) (services.Session, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return services.Session{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return services.Session{}, ErrUnauthorized
	}

	username, _ := c.Get("username").(string)

	return services.Session{UserID: userID, Username: username}, nil
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
