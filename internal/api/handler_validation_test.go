package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupValidationRouter registers routes with a bare handler. These tests
// only exercise request validation, which runs before any dependency is
// touched.
func setupValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	handler := NewHandler(nil, nil, nil, nil, "")
	r.PUT("/api/push/subscription", handler.PutSubscription)
	r.GET("/api/push/vapid_public_key", handler.GetVAPIDPublicKey)
	r.PUT("/api/meals", handler.UpsertMealPlan)
	r.POST("/api/medications/:id/schedules", handler.AddSchedule)
	r.GET("/api/medications/:id", handler.GetMedication)
	return r
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPutSubscriptionRequiresAllFields(t *testing.T) {
	router := setupValidationRouter()

	w := doJSON(router, "PUT", "/api/push/subscription", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "PUT", "/api/push/subscription", `{"endpoint":"https://push.example.com/x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVAPIDKeyUnavailableWhenUnconfigured(t *testing.T) {
	router := setupValidationRouter()

	w := doJSON(router, "GET", "/api/push/vapid_public_key", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUpsertMealPlanValidation(t *testing.T) {
	router := setupValidationRouter()

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"bad meal type", `{"date":"2025-06-02","mealType":"brunch","name":"Pancakes"}`},
		{"bad date", `{"date":"06/02/2025","mealType":"dinner","name":"Pasta"}`},
		{"neither recipe nor name", `{"date":"2025-06-02","mealType":"dinner"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, "PUT", "/api/meals", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestScheduleValidation(t *testing.T) {
	router := setupValidationRouter()
	medPath := "/api/medications/0c9adepath/schedules"

	// A malformed medication id fails before the body is read.
	w := doJSON(router, "POST", medPath, `{"time":"08:00","daysOfWeek":[1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, w.Body.String())

	medPath = "/api/medications/5a3c8f1e-0000-4000-8000-000000000001/schedules"
	for _, body := range []string{
		`{"time":"24:00","daysOfWeek":[1]}`,
		`{"time":"08:60","daysOfWeek":[1]}`,
		`{"time":"08:00","daysOfWeek":[-1]}`,
		`{"daysOfWeek":[1]}`,
	} {
		w := doJSON(router, "POST", medPath, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s should be rejected", body)
	}
}

func TestGetMedicationRejectsMalformedID(t *testing.T) {
	router := setupValidationRouter()

	w := doJSON(router, "GET", "/api/medications/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid id"}`, w.Body.String())
}
