package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
	"github.com/oksasatya/fittrack-api/pkg/response"
)

const (
	MsgMissingCredential = "missing credential"
	MsgInvalidCredential = "invalid credential"
	MsgSubjectInactive   = "subject not found or inactive"
	MsgAdminRequired     = "administrative privilege required"
)

// TokenVerifier is satisfied by *helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// ActiveUserFinder resolves a token subject to a stored, active user.
type ActiveUserFinder interface {
	GetActiveByID(ctx context.Context, id string) (*entity.User, error)
}

// Policy declares what a route requires beyond a valid credential.
type Policy struct {
	AdminRequired bool
}

func Authenticated() Policy { return Policy{} }
func AdminOnly() Policy     { return Policy{AdminRequired: true} }

// Gate authenticates requests against the token codec and the credential store.
type Gate struct {
	Verifier TokenVerifier
	Users    ActiveUserFinder
	Logger   *logrus.Logger
}

func NewGate(verifier TokenVerifier, users ActiveUserFinder, logger *logrus.Logger) *Gate {
	return &Gate{Verifier: verifier, Users: users, Logger: logger}
}

// Auth is shorthand for a Gate without a logger.
func Auth(verifier TokenVerifier, users ActiveUserFinder, policy Policy) gin.HandlerFunc {
	return NewGate(verifier, users, nil).Require(policy)
}

// Require returns a handler that only lets through requests carrying a valid
// credential for an active user, and an administrator when the policy says so.
// The role comes from the store, not from the token.
func (g *Gate) Require(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := credentialFrom(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, MsgMissingCredential, nil)
			return
		}
		claims, err := g.Verifier.Verify(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, MsgInvalidCredential, nil)
			return
		}

		u, err := g.Users.GetActiveByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				response.Error[any](c, http.StatusUnauthorized, MsgSubjectInactive, nil)
				return
			}
			response.FromError(c, g.Logger, err)
			return
		}
		if policy.AdminRequired && !u.Role.IsAdministrator() {
			response.Error[any](c, http.StatusForbidden, MsgAdminRequired, nil)
			return
		}

		setIdentity(c, Identity{UserID: u.ID, Role: u.Role})
		c.Next()
	}
}

// credentialFrom prefers a Bearer Authorization header over the auth cookie.
// Any other scheme is ignored and the cookie is consulted.
func credentialFrom(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if v, err := c.Cookie(helpers.AuthCookieName); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
