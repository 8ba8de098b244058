package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthtrack/healthtrack-go/internal/crypto"
	"github.com/healthtrack/healthtrack-go/internal/repository/memory"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T, db Pinger) *testServer {
	t.Helper()

	store := memory.New()
	tokens, err := crypto.NewTokenService("router-test-secret")
	require.NoError(t, err)
	hasher := crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

	return &testServer{t: t, handler: New(Deps{
		Auth:         service.NewAuthService(store.Users(), tokens, hasher),
		Appointments: service.NewAppointmentService(store.Appointments()),
		Health:       service.NewHealthService(store.PhysicalLogs(), store.MentalLogs(), store.Appointments()),
		Tokens:       tokens,
		DB:           db,
	})}
}

type response struct {
	Code int
	Body map[string]any
}

func (s *testServer) do(method, path, token string, body any) response {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	resp := response{Code: rec.Code}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp.Body))
	}
	return resp
}

func (s *testServer) register(username, email string) string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": email, "password": "pw123456",
	})
	require.Equal(s.t, http.StatusCreated, resp.Code, resp.Body)
	return resp.Body["token"].(string)
}

func data(t *testing.T, resp response) map[string]any {
	t.Helper()
	d, ok := resp.Body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp.Body)
	return d
}

func TestBannerAndHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthtrack API is running", rec.Body.String())

	resp := srv.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", resp.Body["status"])
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func TestHealth_StoreDown(t *testing.T) {
	srv := newTestServer(t, failingPinger{})

	resp := srv.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "unavailable", resp.Body["status"])
}

func TestRegisterLoginAndMe(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "amy", "email": "a@x.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, true, resp.Body["success"])
	user := resp.Body["user"].(map[string]any)
	assert.Equal(t, "amy", user["username"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	resp = srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "amy2", "email": "a@x.com", "password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "user already exists", resp.Body["message"])

	resp = srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "invalid credentials", resp.Body["message"])

	resp = srv.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw123456"})
	require.Equal(t, http.StatusOK, resp.Code)
	token := resp.Body["token"].(string)

	resp = srv.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "a@x.com", data(t, resp)["email"])

	resp = srv.do(http.MethodPut, "/api/users/me", token, map[string]string{"fullName": "Amy Pond"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Amy Pond", data(t, resp)["fullName"])

	resp = srv.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Amy Pond", data(t, resp)["fullName"])
}

func TestRegister_ValidationMessages(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := srv.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "amy"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, []any{"please add an email", "please add a password"}, resp.Body["message"])
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthGate(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := srv.do(http.MethodGet, "/api/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "not authorized to access this route (no token)", resp.Body["message"])

	resp = srv.do(http.MethodGet, "/api/appointments", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "not authorized to access this route (token invalid)", resp.Body["message"])
}

func TestAppointmentOwnership(t *testing.T) {
	srv := newTestServer(t, nil)
	tokenA := srv.register("amy", "a@x.com")
	tokenB := srv.register("bob", "b@x.com")

	resp := srv.do(http.MethodPost, "/api/appointments", tokenA, map[string]string{"title": "Dentist", "date": "2030-01-15T10:00:00Z"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body)
	created := data(t, resp)
	assert.Equal(t, "Scheduled", created["status"])
	path := "/api/appointments/" + created["id"].(string)

	resp = srv.do(http.MethodGet, path, tokenB, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "not authorized to access this appointment", resp.Body["message"])

	resp = srv.do(http.MethodPut, path, tokenB, map[string]string{"title": "Mine"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "not authorized to update this appointment", resp.Body["message"])

	resp = srv.do(http.MethodDelete, path, tokenB, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "not authorized to delete this appointment", resp.Body["message"])

	resp = srv.do(http.MethodGet, "/api/appointments", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 0, resp.Body["count"])

	resp = srv.do(http.MethodGet, "/api/appointments/not-a-uuid", tokenA, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid appointment id format", resp.Body["message"])

	resp = srv.do(http.MethodGet, "/api/appointments/"+uuid.NewString(), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "appointment not found", resp.Body["message"])

	resp = srv.do(http.MethodPut, path, tokenA, map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Completed", data(t, resp)["status"])
	assert.Equal(t, "Dentist", data(t, resp)["title"])

	resp = srv.do(http.MethodDelete, path, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, map[string]any{}, resp.Body["data"])

	resp = srv.do(http.MethodGet, path, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAppointmentList_DateFilter(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.register("amy", "a@x.com")

	for _, date := range []string{"2030-01-10", "2030-01-20T09:30:00Z", "2030-02-01"} {
		resp := srv.do(http.MethodPost, "/api/appointments", token, map[string]string{"title": "Visit", "date": date})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := srv.do(http.MethodGet, "/api/appointments?from=2030-01-15&to=2030-01-20", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, resp.Body["count"])

	resp = srv.do(http.MethodGet, "/api/appointments?from=someday", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, []any{"from must be a valid date"}, resp.Body["message"])

	resp = srv.do(http.MethodGet, "/api/appointments?from=2030-02-01&to=2030-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHealthLogsAndDashboard(t *testing.T) {
	srv := newTestServer(t, nil)
	tokenA := srv.register("amy", "a@x.com")
	tokenB := srv.register("bob", "b@x.com")

	resp := srv.do(http.MethodPost, "/api/health/physical", tokenA, map[string]any{"activityType": "Running", "durationMinutes": 30})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body)
	physicalPath := "/api/health/physical/" + data(t, resp)["id"].(string)

	resp = srv.do(http.MethodPost, "/api/health/physical", tokenA, map[string]any{"activityType": "Running"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, []any{"please add the duration in minutes"}, resp.Body["message"])

	resp = srv.do(http.MethodPost, "/api/health/mental", tokenA, map[string]any{"mood": "Calm", "stressLevel": 4})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body)
	mentalPath := "/api/health/mental/" + data(t, resp)["id"].(string)

	resp = srv.do(http.MethodGet, physicalPath, tokenB, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "not authorized to access this physical health log", resp.Body["message"])

	resp = srv.do(http.MethodPut, mentalPath, tokenA, map[string]any{"mood": "Happy"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Happy", data(t, resp)["mood"])
	assert.EqualValues(t, 4, data(t, resp)["stressLevel"])

	resp = srv.do(http.MethodGet, "/api/health/physical", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, resp.Body["count"])

	resp = srv.do(http.MethodGet, "/api/health/dashboard", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	d := data(t, resp)
	assert.Len(t, d["recentPhysical"], 1)
	assert.Len(t, d["recentMental"], 1)

	resp = srv.do(http.MethodDelete, mentalPath, tokenB, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = srv.do(http.MethodDelete, mentalPath, tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = srv.do(http.MethodGet, "/api/health/mental", tokenA, nil)
	assert.EqualValues(t, 0, resp.Body["count"])
}
