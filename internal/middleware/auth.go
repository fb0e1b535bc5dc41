package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
)

// Authenticate verifies the bearer token and that its account still exists
// and is active.
func Authenticate(cfg *config.Config, s store.Store) gin.HandlerFunc {
	admins := store.NewRepo[models.Admin, models.AdminID](s, store.Admins)
	clients := store.NewRepo[models.Client, models.ClientID](s, store.Clients)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "Authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "Invalid authorization header")
			return
		}

		claims, err := parseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			httperr.Unauthorized(c, "Invalid or expired token")
			return
		}

		rawID, ok1 := claims[ClaimID].(float64)
		role, ok2 := claims[ClaimRole].(string)
		username, _ := claims[ClaimUsername].(string)
		if !ok1 || !ok2 {
			httperr.Unauthorized(c, "Invalid token payload")
			return
		}
		id := int64(rawID)

		var active bool
		switch role {
		case models.RoleAdmin, models.RoleTechnician:
			var a *models.Admin
			a, err = admins.Get(c.Request.Context(), models.AdminID(id))
			if err == nil {
				active = a.Active && a.Role == role
			}
		case models.RoleClient:
			var cl *models.Client
			cl, err = clients.Get(c.Request.Context(), models.ClientID(id))
			if err == nil {
				active = cl.Active
			}
		default:
			httperr.Unauthorized(c, "Invalid token payload")
			return
		}

		if errors.Is(err, store.ErrNotFound) {
			httperr.Unauthorized(c, "User no longer exists")
			return
		}
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		if !active {
			httperr.Unauthorized(c, "Account is inactive")
			return
		}

		c.Set(ContextUserID, id)
		c.Set(ContextUsername, username)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// Authorize lets the request through only for the given roles.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "You do not have permission to perform this action")
	}
}

func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

func Username(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// IsClient reports whether the caller is a customer rather than staff.
func IsClient(c *gin.Context) bool {
	return Role(c) == models.RoleClient
}

// Actor returns the caller for audit entries.
func Actor(c *gin.Context) audit.Actor {
	return audit.Actor{UserID: UserID(c), Role: Role(c)}
}
