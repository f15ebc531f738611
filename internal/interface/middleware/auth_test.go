package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type userMap map[string]*entity.User

func (m userMap) GetActiveByID(_ context.Context, id string) (*entity.User, error) {
	if id == "boom" {
		return nil, apperr.Internal(errors.New("connection reset"))
	}
	u, ok := m[id]
	if !ok || !u.IsActive {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

type gateFixture struct {
	jwt   *helpers.JWTManager
	users userMap
}

func newGateFixture() gateFixture {
	return gateFixture{
		jwt: helpers.NewJWTManager("gate-secret", time.Hour),
		users: userMap{
			"std":   {ID: "std", Role: entity.RoleStandard, IsActive: true},
			"admin": {ID: "admin", Role: entity.RoleAdministrator, IsActive: true},
			"off":   {ID: "off", Role: entity.RoleStandard, IsActive: false},
		},
	}
}

func (f gateFixture) token(t *testing.T, id string, role entity.Role) string {
	t.Helper()
	tok, _, err := f.jwt.Issue(id, role)
	require.NoError(t, err)
	return tok
}

func (f gateFixture) serve(policy Policy, req *http.Request) (*httptest.ResponseRecorder, *Identity) {
	var seen *Identity
	r := gin.New()
	r.GET("/x", Auth(f.jwt, f.users, policy), func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if ok {
			seen = &id
		}
		if ctxID, ok := IdentityFromContext(c.Request.Context()); ok && ctxID != id {
			c.Status(http.StatusTeapot)
			return
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func bearer(tok string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error   string `json:"error"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

func TestGate_Failures(t *testing.T) {
	f := newGateFixture()
	other := helpers.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.Issue("admin", entity.RoleAdministrator)
	require.NoError(t, err)

	cases := []struct {
		name   string
		req    *http.Request
		policy Policy
		status int
		msg    string
	}{
		{"no credential", httptest.NewRequest(http.MethodGet, "/x", nil), Authenticated(), http.StatusUnauthorized, MsgMissingCredential},
		{"garbage token", bearer("not.a.jwt"), Authenticated(), http.StatusUnauthorized, MsgInvalidCredential},
		{"wrong secret", bearer(forged), Authenticated(), http.StatusUnauthorized, MsgInvalidCredential},
		{"inactive subject", bearer(f.token(t, "off", entity.RoleStandard)), Authenticated(), http.StatusUnauthorized, MsgSubjectInactive},
		{"deleted subject", bearer(f.token(t, "gone", entity.RoleStandard)), Authenticated(), http.StatusUnauthorized, MsgSubjectInactive},
		{"standard user on admin route", bearer(f.token(t, "std", entity.RoleStandard)), AdminOnly(), http.StatusForbidden, MsgAdminRequired},
		// the adm claim is ignored; the stored role decides
		{"stale admin claim", bearer(f.token(t, "std", entity.RoleAdministrator)), AdminOnly(), http.StatusForbidden, MsgAdminRequired},
		{"store failure", bearer(f.token(t, "boom", entity.RoleStandard)), Authenticated(), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, seen := f.serve(tc.policy, tc.req)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.msg, errorOf(t, w))
			assert.Nil(t, seen, "wrapped handler must not run")
		})
	}
}

func TestGate_Success(t *testing.T) {
	f := newGateFixture()

	w, seen := f.serve(Authenticated(), bearer(f.token(t, "std", entity.RoleStandard)))
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, Identity{UserID: "std", Role: entity.RoleStandard}, *seen)

	w, seen = f.serve(AdminOnly(), bearer(f.token(t, "admin", entity.RoleStandard)))
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.True(t, seen.IsAdministrator())
}

func TestGate_CookieCredential(t *testing.T) {
	f := newGateFixture()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AuthCookieName, Value: f.token(t, "std", entity.RoleStandard)})

	w, seen := f.serve(Authenticated(), req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "std", seen.UserID)
}

func TestGate_HeaderWinsOverCookie(t *testing.T) {
	f := newGateFixture()
	req := bearer("bad-token")
	req.AddCookie(&http.Cookie{Name: helpers.AuthCookieName, Value: f.token(t, "std", entity.RoleStandard)})

	w, _ := f.serve(Authenticated(), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MsgInvalidCredential, errorOf(t, w))
}

func TestGate_NonBearerSchemeFallsBackToCookie(t *testing.T) {
	f := newGateFixture()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.AddCookie(&http.Cookie{Name: helpers.AuthCookieName, Value: f.token(t, "std", entity.RoleStandard)})

	w, seen := f.serve(Authenticated(), req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "std", seen.UserID)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w, _ = f.serve(Authenticated(), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MsgMissingCredential, errorOf(t, w))
}
