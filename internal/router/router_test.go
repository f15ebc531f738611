package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/fittrack-api/config"
	"github.com/oksasatya/fittrack-api/internal/container"
	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/testkit/memstore"
	"github.com/oksasatya/fittrack-api/pkg/helpers"
	"github.com/oksasatya/fittrack-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	helpers.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

type testApp struct {
	t      *testing.T
	store  *memstore.Store
	c      *container.Container
	engine *gin.Engine
}

func newTestApp(t *testing.T, db container.Pinger) *testApp {
	t.Helper()
	cfg := &config.Config{
		AppName:            "fittrack-test",
		Env:                "test",
		JWTSecret:          "test-secret",
		JWTTTL:             time.Hour,
		CORSAllowedOrigins: "http://localhost:3000",
	}
	if db == nil {
		db = pingFunc(func(context.Context) error { return nil })
	}
	store := memstore.New()
	c := container.New(cfg, helpers.NewNopLogger(), db, container.Repositories{
		Users:    store.Users(),
		Workouts: store.Workouts(),
		Goals:    store.Goals(),
		Settings: store.Settings(),
		Stats:    store.Stats(),
	})
	engine, err := NewEngine(c)
	require.NoError(t, err)
	return &testApp{t: t, store: store, c: c, engine: engine}
}

func (a *testApp) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type userOut struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

func (a *testApp) register(email string) userOut {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     email,
		"password":  "secret123",
		"firstName": "Jane",
		"lastName":  "Runner",
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	return decode[struct {
		User userOut `json:"user"`
	}](a.t, env.Data).User
}

func (a *testApp) login(email string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(a.t, http.StatusOK, code, env.Error)
	return decode[struct {
		Token string `json:"token"`
	}](a.t, env.Data).Token
}

func (a *testApp) promote(id string) {
	a.t.Helper()
	require.NoError(a.t, a.c.Repos.Users.UpdateStatus(context.Background(), id, true, entity.RoleAdministrator))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t, nil)
	body := gin.H{"email": "a@b.com", "password": "secret1", "firstName": "Ada", "lastName": "Byron"}

	code, env := app.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, code, env.Error)
	u := decode[struct {
		User userOut `json:"user"`
	}](t, env.Data).User
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)

	code, env = app.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	body["email"] = " A@B.com "
	code, _ = app.do(http.MethodPost, "/api/auth/register", "", body)
	assert.NotEqual(t, http.StatusCreated, code)
}

func TestRegister_ValidationDetails(t *testing.T) {
	app := newTestApp(t, nil)
	code, env := app.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "password": "123", "firstName": "J", "lastName": "Runner",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Details, "email")
	assert.Contains(t, env.Details, "password")
	assert.Contains(t, env.Details, "firstName")
}

func TestLogin_TokenIdentifiesUser(t *testing.T) {
	app := newTestApp(t, nil)
	u := app.register("jane@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"jane@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	token := decode[struct {
		Token string `json:"token"`
	}](t, env.Data).Token

	claims, err := app.c.JWT.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.AuthCookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	code, _ := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCookieCredentialAccepted(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("jane@example.com")
	token := app.login("jane@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogout_ExpiresCookie(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.AuthCookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestProtectedRoutes_RequireCredential(t *testing.T) {
	app := newTestApp(t, nil)
	for _, path := range []string{"/api/profile", "/api/workouts", "/api/goals", "/api/dashboard", "/api/stats", "/api/admin/users"} {
		code, env := app.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "missing credential", env.Error, path)
	}
	code, _ := app.do(http.MethodGet, "/api/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestWorkout_ShowsUpOnDashboard(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("jane@example.com")
	token := app.login("jane@example.com")

	code, env := app.do(http.MethodPost, "/api/workouts", token, gin.H{
		"name": "Morning run", "workoutType": "cardio", "durationMinutes": 45, "caloriesBurned": 300,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	code, env = app.do(http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)
	dash := decode[struct {
		Stats struct {
			TotalWorkouts int `json:"totalWorkouts"`
			TotalMinutes  int `json:"totalMinutes"`
			TotalCalories int `json:"totalCalories"`
		} `json:"stats"`
		RecentWorkouts []struct {
			Name string `json:"name"`
		} `json:"recentWorkouts"`
	}](t, env.Data)
	assert.Equal(t, 1, dash.Stats.TotalWorkouts)
	assert.Equal(t, 45, dash.Stats.TotalMinutes)
	assert.Equal(t, 300, dash.Stats.TotalCalories)
	require.Len(t, dash.RecentWorkouts, 1)
	assert.Equal(t, "Morning run", dash.RecentWorkouts[0].Name)

	code, _ = app.do(http.MethodPost, "/api/workouts", token, gin.H{
		"name": "Swim", "workoutType": "swimming", "durationMinutes": 30,
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGoals_OwnedByCaller(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("jane@example.com")
	app.register("joe@example.com")
	jane := app.login("jane@example.com")
	joe := app.login("joe@example.com")

	code, env := app.do(http.MethodPost, "/api/goals", jane, gin.H{
		"title": "Run 100km", "goalType": "distance", "targetValue": 100, "targetUnit": "km", "currentValue": 25,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	goal := decode[struct {
		ID       string  `json:"id"`
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	}](t, env.Data)
	assert.Equal(t, "in_progress", goal.Status)
	assert.InDelta(t, 25.0, goal.Progress, 0.001)

	code, _ = app.do(http.MethodPut, "/api/goals/"+goal.ID, joe, gin.H{"currentValue": 50})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = app.do(http.MethodDelete, "/api/goals/"+goal.ID, joe, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = app.do(http.MethodPut, "/api/goals/"+goal.ID, jane, gin.H{"currentValue": 100, "status": "completed"})
	require.Equal(t, http.StatusOK, code, env.Error)
	updated := decode[struct {
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	}](t, env.Data)
	assert.Equal(t, "completed", updated.Status)
	assert.InDelta(t, 100.0, updated.Progress, 0.001)

	code, _ = app.do(http.MethodDelete, "/api/goals/"+goal.ID, jane, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAdmin_NonAdminForbidden(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("jane@example.com")
	token := app.login("jane@example.com")

	code, env := app.do(http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "administrative privilege required", env.Error)
}

func TestAdmin_DeactivatedUserLosesAccess(t *testing.T) {
	app := newTestApp(t, nil)
	admin := app.register("admin@example.com")
	app.promote(admin.ID)
	adminToken := app.login("admin@example.com")

	jane := app.register("jane@example.com")
	janeToken := app.login("jane@example.com")

	code, _ := app.do(http.MethodGet, "/api/profile", janeToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := app.do(http.MethodPatch, "/api/admin/users/"+jane.ID, adminToken, gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = app.do(http.MethodGet, "/api/profile", janeToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "subject not found or inactive", env.Error)

	code, _ = app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdmin_ProtectsAdministrators(t *testing.T) {
	app := newTestApp(t, nil)
	admin := app.register("admin@example.com")
	app.promote(admin.ID)
	other := app.register("other@example.com")
	app.promote(other.ID)
	token := app.login("admin@example.com")

	code, _ := app.do(http.MethodDelete, "/api/admin/users/"+other.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = app.do(http.MethodPatch, "/api/admin/users/"+other.ID, token, gin.H{"is_active": false})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = app.do(http.MethodPatch, "/api/admin/users/"+other.ID, token, gin.H{"role": "user"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = app.do(http.MethodPatch, "/api/admin/users/"+other.ID, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdmin_ListDeleteAndStats(t *testing.T) {
	app := newTestApp(t, nil)
	admin := app.register("admin@example.com")
	app.promote(admin.ID)
	adminToken := app.login("admin@example.com")

	jane := app.register("jane@example.com")
	janeToken := app.login("jane@example.com")
	code, _ := app.do(http.MethodPost, "/api/workouts", janeToken, gin.H{
		"name": "Ride", "workoutType": "cardio", "durationMinutes": 60, "caloriesBurned": 500,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := app.do(http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	users := decode[[]struct {
		ID            string `json:"id"`
		TotalWorkouts int64  `json:"totalWorkouts"`
		TotalCalories int64  `json:"totalCalories"`
	}](t, env.Data)
	require.Len(t, users, 2)
	for _, u := range users {
		if u.ID == jane.ID {
			assert.Equal(t, int64(1), u.TotalWorkouts)
			assert.Equal(t, int64(500), u.TotalCalories)
		}
	}

	code, env = app.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	totals := decode[struct {
		TotalUsers    int64 `json:"totalUsers"`
		ActiveUsers   int64 `json:"activeUsers"`
		TotalWorkouts int64 `json:"totalWorkouts"`
		TotalCalories int64 `json:"totalCalories"`
	}](t, env.Data)
	assert.Equal(t, int64(2), totals.TotalUsers)
	assert.Equal(t, int64(2), totals.ActiveUsers)
	assert.Equal(t, int64(1), totals.TotalWorkouts)
	assert.Equal(t, int64(500), totals.TotalCalories)

	code, _ = app.do(http.MethodDelete, "/api/admin/users/"+jane.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = app.do(http.MethodDelete, "/api/admin/users/"+jane.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = app.do(http.MethodGet, "/api/workouts", janeToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdmin_Settings(t *testing.T) {
	app := newTestApp(t, nil)
	admin := app.register("admin@example.com")
	app.promote(admin.ID)
	token := app.login("admin@example.com")

	code, env := app.do(http.MethodPost, "/api/admin/settings", token, gin.H{"registration_open": true})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Details, "registration_open")

	code, _ = app.do(http.MethodPost, "/api/admin/settings", token, gin.H{"max_users": 0})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = app.do(http.MethodPost, "/api/admin/settings", token, gin.H{"platform_name": "GymBook", "maintenance_mode": true})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = app.do(http.MethodGet, "/api/admin/settings", token, nil)
	require.Equal(t, http.StatusOK, code)
	s := decode[struct {
		Settings struct {
			PlatformName    string `json:"platform_name"`
			MaxUsers        int    `json:"max_users"`
			MaintenanceMode bool   `json:"maintenance_mode"`
		} `json:"settings"`
	}](t, env.Data).Settings
	assert.Equal(t, "GymBook", s.PlatformName)
	assert.Equal(t, 1000, s.MaxUsers)
	assert.True(t, s.MaintenanceMode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)
	code, env := app.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	down := newTestApp(t, pingFunc(func(context.Context) error { return errors.New("connection refused") }))
	code, env = down.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, env.Success)
}

func TestDebugVars_DisabledByDefault(t *testing.T) {
	app := newTestApp(t, nil)
	code, env := app.do(http.MethodGet, "/api/debug/vars", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "route not found", env.Error)
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	app := newTestApp(t, nil)
	code, env := app.do(http.MethodDelete, "/api/workouts", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}
