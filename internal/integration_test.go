package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"familyhub-backend/config"
	"familyhub-backend/internal/api"
	"familyhub-backend/internal/auth"
	"familyhub-backend/internal/db"
	"familyhub-backend/internal/reminder"
	"familyhub-backend/internal/store"
	"familyhub-backend/internal/upload"
)

// testEnv wires the full HTTP stack against an in-memory SQLite database,
// the same way main assembles it.
type testEnv struct {
	t      *testing.T
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.JWTSecret = "integration-test-secret"
	cfg.Auth.TokenTTL = time.Hour

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	saver, err := upload.NewSaver(t.TempDir(), 1<<20)
	require.NoError(t, err)

	appStore := store.NewGormStore(testDB)
	router := api.NewRouter(cfg, appStore, issuer, saver, nil)

	return &testEnv{t: t, router: router}
}

// do sends a JSON request through the router and decodes the response body
// into out (when out is non-nil and the body is non-empty).
func (e *testEnv) do(method, path, token string, body any, out any) int {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
	}
	return w.Code
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		FamilyID string `json:"familyId"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	} `json:"user"`
}

func (e *testEnv) register(body map[string]any) authPayload {
	e.t.Helper()
	var resp authPayload
	code := e.do(http.MethodPost, "/api/auth/register", "", body, &resp)
	require.Equal(e.t, http.StatusCreated, code)
	require.NotEmpty(e.t, resp.Token)
	return resp
}

// TestMedicationLifecycle walks the medication flow end to end: a family is
// founded, a second member joins by invite code, a medication with a daily
// schedule is created, and an intake both marks the reminder taken and
// drops the stock to its refill threshold.
func TestMedicationLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Found a family and join it from a second account.
	admin := env.register(map[string]any{
		"name":        "Alice",
		"email":       "alice@example.com",
		"password":    "correct-horse",
		"family_name": "The Examples",
	})
	assert.Equal(t, "admin", admin.User.Role)

	var family struct {
		InviteCode string `json:"inviteCode"`
	}
	code := env.do(http.MethodGet, "/api/family", admin.Token, nil, &family)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, family.InviteCode)

	member := env.register(map[string]any{
		"name":        "Bob",
		"email":       "bob@example.com",
		"password":    "correct-horse",
		"invite_code": family.InviteCode,
	})
	assert.Equal(t, "member", member.User.Role)
	assert.Equal(t, admin.User.FamilyID, member.User.FamilyID)

	// Create a medication one dose above its refill threshold.
	var med struct {
		ID              string `json:"id"`
		RemainingAmount int    `json:"remainingAmount"`
	}
	code = env.do(http.MethodPost, "/api/medications", admin.Token, map[string]any{
		"name":            "Ibuprofen",
		"dosage":          "200mg",
		"unit":            "tablets",
		"remainingAmount": 4,
		"refillThreshold": 3,
	}, &med)
	require.Equal(t, http.StatusCreated, code)

	// A schedule at the current hour, every day of the week, so today's
	// resolver always produces exactly one instance.
	scheduleTime := time.Now().UTC().Format("15:04")
	var sched struct {
		ID string `json:"id"`
	}
	code = env.do(http.MethodPost, "/api/medications/"+med.ID+"/schedules", admin.Token, map[string]any{
		"time":       scheduleTime,
		"daysOfWeek": []int{0, 1, 2, 3, 4, 5, 6},
	}, &sched)
	require.Equal(t, http.StatusCreated, code)

	// The member sees the same reminder: medications are family-scoped.
	var instances []reminder.Instance
	code = env.do(http.MethodGet, "/api/reminders/today", member.Token, nil, &instances)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, instances, 1)
	assert.Equal(t, med.ID, instances[0].MedicationID)
	assert.Equal(t, scheduleTime, instances[0].Time)
	assert.False(t, instances[0].Taken)

	// Taking the dose decrements the stock and trips the refill flag.
	var intake struct {
		Medication struct {
			RemainingAmount int `json:"remainingAmount"`
		} `json:"medication"`
		RefillDue bool `json:"refillDue"`
	}
	code = env.do(http.MethodPost, "/api/medications/"+med.ID+"/intake", member.Token, map[string]any{
		"taken": true,
	}, &intake)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 3, intake.Medication.RemainingAmount)
	assert.True(t, intake.RefillDue)

	// The reminder is now marked taken, and the overview agrees.
	code = env.do(http.MethodGet, "/api/reminders/today", admin.Token, nil, &instances)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, instances, 1)
	assert.True(t, instances[0].Taken)

	var overview reminder.Buckets
	code = env.do(http.MethodGet, "/api/reminders/overview", admin.Token, nil, &overview)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, overview.Taken, 1)
	assert.Empty(t, overview.Due)
	assert.Empty(t, overview.Missed)
}

// TestFamilyIsolation verifies that one family can never read or touch
// another family's rows, and that cross-family access looks identical to a
// missing row.
func TestFamilyIsolation(t *testing.T) {
	env := newTestEnv(t)

	a := env.register(map[string]any{
		"name":        "Alice",
		"email":       "alice@one.example.com",
		"password":    "correct-horse",
		"family_name": "Family One",
	})
	b := env.register(map[string]any{
		"name":        "Mallory",
		"email":       "mallory@two.example.com",
		"password":    "correct-horse",
		"family_name": "Family Two",
	})

	var med struct {
		ID string `json:"id"`
	}
	code := env.do(http.MethodPost, "/api/medications", a.Token, map[string]any{
		"name": "Vitamin D",
	}, &med)
	require.Equal(t, http.StatusCreated, code)

	// Reads, writes and deletes from the other family all 404.
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/medications/"+med.ID, b.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/api/medications/"+med.ID, b.Token, map[string]any{
		"name": "Hijacked",
	}, nil))
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/medications/"+med.ID, b.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, "/api/medications/"+med.ID+"/intake", b.Token, map[string]any{
		"taken": true,
	}, nil))

	// Listings stay scoped.
	var meds []json.RawMessage
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/medications", b.Token, nil, &meds))
	assert.Empty(t, meds)

	// And the owner is unaffected.
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/medications/"+med.ID, a.Token, nil, nil))
}

// TestAuthAndValidation covers the error paths a client is most likely to
// hit: missing and bad tokens, duplicate registration, malformed schedules.
func TestAuthAndValidation(t *testing.T) {
	env := newTestEnv(t)

	// Protected routes reject anonymous and garbage tokens.
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/medications", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/medications", "not-a-jwt", nil, nil))

	a := env.register(map[string]any{
		"name":        "Alice",
		"email":       "alice@example.com",
		"password":    "correct-horse",
		"family_name": "The Examples",
	})

	// The same email cannot register twice.
	code := env.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":        "Alice Again",
		"email":       "alice@example.com",
		"password":    "correct-horse",
		"family_name": "Another Family",
	}, nil)
	assert.Equal(t, http.StatusConflict, code)

	// Exactly one of family_name / invite_code must be provided.
	code = env.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Nobody",
		"email":    "nobody@example.com",
		"password": "correct-horse",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Login round-trips, wrong password does not.
	var login authPayload
	code = env.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, &login)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, login.Token)

	code = env.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// Malformed schedules are rejected before they reach the resolver.
	var med struct {
		ID string `json:"id"`
	}
	code = env.do(http.MethodPost, "/api/medications", a.Token, map[string]any{"name": "Ibuprofen"}, &med)
	require.Equal(t, http.StatusCreated, code)

	for _, body := range []map[string]any{
		{"time": "25:00", "daysOfWeek": []int{1}},
		{"time": "8:00", "daysOfWeek": []int{1}},
		{"time": "08:00", "daysOfWeek": []int{7}},
		{"time": "08:00", "daysOfWeek": []int{1, 1}},
	} {
		code = env.do(http.MethodPost, "/api/medications/"+med.ID+"/schedules", a.Token, body, nil)
		assert.Equal(t, http.StatusBadRequest, code, "schedule %v should be rejected", body)
	}
}
