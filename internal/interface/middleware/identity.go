package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

const IdentityKey = "identity"

// Identity is the authenticated caller as resolved by the Gate.
type Identity struct {
	UserID string
	Role   entity.Role
}

func (i Identity) IsAdministrator() bool { return i.Role.IsAdministrator() }

type identityCtxKey struct{}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(IdentityKey, id)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityCtxKey{}, id))
}

// IdentityFrom returns the identity stored by the Gate for this request.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
