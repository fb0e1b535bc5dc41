package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/backup"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/models"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

const testPassword = "password123"

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *store.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	log := zap.NewNop()
	dispatcher := audit.NewDispatcher(audit.New(st), 50, log)
	t.Cleanup(func() { _ = dispatcher.Close(context.Background()) })

	engine := NewEngine(Deps{
		Config:  &config.Config{JWTSecret: "test-secret", JWTExpire: time.Hour},
		Store:   st,
		Locker:  lock.NewLocalLocker(time.Second),
		Audit:   dispatcher,
		Backups: backup.NewService(st, nil),
	}, log)

	return &testServer{t: t, engine: engine, store: st}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
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

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	data, ok := decode(t, w)["data"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return data
}

func (s *testServer) seedStaff(username, role string) {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(s.t, err)

	_, err = store.NewRepo[models.Admin, models.AdminID](s.store, store.Admins).Create(context.Background(), &models.Admin{
		Username:  username,
		Password:  string(hash),
		FirstName: "Staff",
		LastName:  "Member",
		Email:     username + "@autoservice.ro",
		Role:      role,
		Active:    true,
	})
	require.NoError(s.t, err)
}

func (s *testServer) login(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": username,
		"password": testPassword,
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	token, _ := dataOf(s.t, w)["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func (s *testServer) register(username, email string) int64 {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":     username,
		"password":     testPassword,
		"firstName":    "Ion",
		"lastName":     "Popescu",
		"phoneNumbers": []string{"0722123456"},
		"email":        email,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return int64(dataOf(s.t, w)["id"].(float64))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	id := s.register("ion.popescu", "Ion@Example.com")

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":     "ion.popescu",
		"password":     testPassword,
		"firstName":    "Ion",
		"lastName":     "Popescu",
		"phoneNumbers": []string{"0722123456"},
		"email":        "other@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["error_code"])

	token := s.login("ion.popescu")

	w = s.do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := dataOf(t, w)
	assert.Equal(t, float64(id), profile["id"])
	assert.Equal(t, models.RoleClient, profile["role"])
	assert.Equal(t, "ion@example.com", profile["email"])
	assert.NotContains(t, profile, "password")
}

func TestAuth_LoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.register("maria.ionescu", "maria@example.com")

	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "maria.ionescu",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "nobody",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	clients := store.NewRepo[models.Client, models.ClientID](s.store, store.Clients)
	found, err := clients.Find(context.Background(), store.Filter{"username": "maria.ionescu"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	_, err = clients.Update(context.Background(), found[0].ID, store.Patch{"active": false})
	require.NoError(t, err)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "maria.ionescu",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account_inactive", decode(t, w)["error_code"])
}

func TestRegister_AggregatesViolations(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":     "ab",
		"phoneNumbers": []string{"123"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "validation_error", body["error_code"])

	violations, ok := body["validationErrors"].([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(violations), 5)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	s.seedStaff("admin", models.RoleAdmin)

	mine := s.register("ion.popescu", "ion@example.com")
	other := s.register("maria.ionescu", "maria@example.com")
	clientToken := s.login("ion.popescu")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		code   string
	}{
		{"no token", http.MethodGet, "/api/clients", "", http.StatusUnauthorized, "unauthorized"},
		{"garbage token", http.MethodGet, "/api/clients", "not-a-jwt", http.StatusUnauthorized, "unauthorized"},
		{"client lists clients", http.MethodGet, "/api/clients", clientToken, http.StatusForbidden, "forbidden"},
		{"client reads parts", http.MethodGet, "/api/parts", clientToken, http.StatusForbidden, "forbidden"},
		{"client reads service records", http.MethodGet, "/api/service-records", clientToken, http.StatusForbidden, "forbidden"},
		{"client reads another client", http.MethodGet, "/api/clients/" + itoa(other), clientToken, http.StatusForbidden, "forbidden"},
		{"client reads own record", http.MethodGet, "/api/clients/" + itoa(mine), clientToken, http.StatusOK, ""},
		{"admin lists clients", http.MethodGet, "/api/clients", s.login("admin"), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode(t, w)["error_code"])
			}
		})
	}
}

func TestAppointmentAndServiceRecordFlow(t *testing.T) {
	s := newTestServer(t)
	s.seedStaff("admin", models.RoleAdmin)
	s.seedStaff("technician", models.RoleTechnician)

	clientID := s.register("ion.popescu", "ion@example.com")
	admin := s.login("admin")
	tech := s.login("technician")

	// car
	w := s.do(http.MethodPost, "/api/cars", admin, map[string]any{
		"clientId":       clientID,
		"licensePlate":   "b 123 abc",
		"chassisNumber":  "WVWZZZ1JZXW123456",
		"brand":          "Volkswagen",
		"model":          "Golf",
		"year":           2020,
		"engineType":     "diesel",
		"engineCapacity": 1968,
		"horsePower":     150,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	car := dataOf(t, w)
	assert.Equal(t, "B 123 ABC", car["licensePlate"])
	assert.Equal(t, float64(110), car["powerKW"])
	carID := int64(car["id"].(float64))

	// appointment
	w = s.do(http.MethodPost, "/api/appointments", admin, map[string]any{
		"clientId":      clientID,
		"carId":         carID,
		"date":          "2030-06-10",
		"startTime":     "10:00",
		"endTime":       "11:30",
		"description":   "Annual service",
		"contactMethod": "phone",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := dataOf(t, w)
	assert.Equal(t, float64(90), ap["duration"])
	assert.Equal(t, "scheduled", ap["status"])
	apID := int64(ap["id"].(float64))

	// overlapping slot
	w = s.do(http.MethodPost, "/api/appointments", admin, map[string]any{
		"clientId":      clientID,
		"carId":         carID,
		"date":          "2030-06-10",
		"startTime":     "11:00",
		"endTime":       "12:00",
		"description":   "Tyres",
		"contactMethod": "email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "overlap_conflict", decode(t, w)["error_code"])

	// availability skips the booked window
	w = s.do(http.MethodGet, "/api/public/availability?date=2030-06-10&duration=60", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	slots := dataOf(t, w)["slots"].([]any)
	for _, raw := range slots {
		slot := raw.(map[string]any)
		assert.NotEqual(t, "10:00", slot["start"])
		assert.NotEqual(t, "10:30", slot["start"])
	}

	// open service record
	w = s.do(http.MethodPost, "/api/service-records", tech, map[string]any{
		"appointmentId": apID,
		"reception": map[string]any{
			"clientReportedIssues": "Brake noise",
			"receivedBy":           "Mihai",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	srID := int64(dataOf(t, w)["id"].(float64))

	w = s.do(http.MethodGet, "/api/appointments/"+itoa(apID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in_progress", dataOf(t, w)["status"])

	// a second record for the same appointment
	w = s.do(http.MethodPost, "/api/service-records", tech, map[string]any{
		"appointmentId": apID,
		"reception": map[string]any{
			"clientReportedIssues": "Again",
			"receivedBy":           "Mihai",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "duplicate_service_record", decode(t, w)["error_code"])

	// processing with a bad duration
	processing := map[string]any{
		"operations":         []string{"Brake pads replacement"},
		"repaired":           "full",
		"processingDuration": 45,
		"processedBy":        "Alex",
	}
	w = s.do(http.MethodPost, "/api/service-records/"+itoa(srID)+"/processing", tech, processing)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_granularity", decode(t, w)["error_code"])

	processing["processingDuration"] = 60
	w = s.do(http.MethodPost, "/api/service-records/"+itoa(srID)+"/processing", tech, processing)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, dataOf(t, w)["completed"])

	w = s.do(http.MethodGet, "/api/service-records/"+itoa(srID), tech, nil)
	require.Equal(t, http.StatusOK, w.Code)
	enriched := dataOf(t, w)
	assert.Contains(t, enriched, "appointmentInfo")
	assert.Contains(t, enriched, "clientInfo")
	assert.Contains(t, enriched, "carInfo")

	w = s.do(http.MethodGet, "/api/appointments/"+itoa(apID), admin, nil)
	assert.Equal(t, "completed", dataOf(t, w)["status"])

	// the appointment and car are now referenced
	w = s.do(http.MethodDelete, "/api/appointments/"+itoa(apID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "in_use", decode(t, w)["error_code"])

	w = s.do(http.MethodDelete, "/api/cars/"+itoa(carID), admin, nil)
	assert.Equal(t, "in_use", decode(t, w)["error_code"])

	// admin actions reach the audit log
	require.Eventually(t, func() bool {
		w := s.do(http.MethodGet, "/api/audit-logs?entity=appointment", admin, nil)
		return w.Code == http.StatusOK && decode(t, w)["total"].(float64) >= 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestClientCannotBookForSomeoneElse(t *testing.T) {
	s := newTestServer(t)
	s.register("ion.popescu", "ion@example.com")
	other := s.register("maria.ionescu", "maria@example.com")
	token := s.login("ion.popescu")

	w := s.do(http.MethodPost, "/api/appointments", token, map[string]any{
		"clientId":      other,
		"carId":         1,
		"date":          "2030-06-10",
		"startTime":     "10:00",
		"endTime":       "11:00",
		"description":   "Oil change",
		"contactMethod": "phone",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestParts_StockAndDelete(t *testing.T) {
	s := newTestServer(t)
	s.seedStaff("admin", models.RoleAdmin)
	admin := s.login("admin")

	w := s.do(http.MethodPost, "/api/parts", admin, map[string]any{
		"name":      "Engine oil 5W30",
		"category":  "Oils",
		"stock":     10,
		"unitPrice": 60,
		"unitType":  "litre",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := itoa(int64(dataOf(t, w)["id"].(float64)))

	tests := []struct {
		name   string
		body   map[string]any
		status int
		stock  float64
		code   string
	}{
		{"add", map[string]any{"stock": 5, "operation": "add"}, http.StatusOK, 15, ""},
		{"subtract", map[string]any{"stock": 3, "operation": "subtract"}, http.StatusOK, 12, ""},
		{"subtract too much", map[string]any{"stock": 20, "operation": "subtract"}, http.StatusBadRequest, 0, "insufficient_stock"},
		{"set by default", map[string]any{"stock": 7}, http.StatusOK, 7, ""},
		{"unknown operation", map[string]any{"stock": 1, "operation": "double"}, http.StatusBadRequest, 0, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPatch, "/api/parts/"+id+"/stock", admin, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode(t, w)["error_code"])
				return
			}
			assert.Equal(t, tt.stock, dataOf(t, w)["stock"])
		})
	}

	w = s.do(http.MethodGet, "/api/parts/categories", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Oils"}, decode(t, w)["data"])

	w = s.do(http.MethodDelete, "/api/parts/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBackup_DownloadWithoutBucket(t *testing.T) {
	s := newTestServer(t)
	s.seedStaff("admin", models.RoleAdmin)

	w := s.do(http.MethodPost, "/api/admin/backups", s.login("admin"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Contains(t, snapshot, "admins")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
