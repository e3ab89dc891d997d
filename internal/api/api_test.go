package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"flight_favorites/internal/config"
	"flight_favorites/internal/db"
	"flight_favorites/internal/db/dbtest"
	"flight_favorites/internal/domain"
	"flight_favorites/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		BcryptCost:  bcrypt.MinCost,
		CacheTTL:    time.Minute,
		CORSOrigins: []string{"*"},
	}
}

// setupRouter returns a router over a fresh SQLite database
func setupRouter(t *testing.T, rdb *redis.Client) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gdb := dbtest.Open(t)
	r, err := NewRouter(testConfig(), gdb, rdb)
	require.NoError(t, err)
	return r, gdb
}

// do sends a JSON request and returns the recorded response
func do(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func register(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/user/registration", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[AuthResponse](t, w).Token
}

func createFlight(t *testing.T, r *gin.Engine) domain.Flight {
	t.Helper()
	w := do(r, http.MethodPost, "/api/flight", gin.H{"airportArrival": "JFK", "airportDeparture": "LAX", "aviaCompany": "Delta"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Flight](t, w)
}

func flightPath(id uint) string {
	return "/api/flight/" + strconv.FormatUint(uint64(id), 10)
}

func TestEndToEndScenario(t *testing.T) {
	r, _ := setupRouter(t, nil)

	token := register(t, r, "a@b.com", "pw")
	require.NotEmpty(t, token)

	w := do(r, http.MethodGet, "/api/user/auth", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	refreshed := decode[AuthResponse](t, w).Token
	claims, err := utils.NewTokenManager("test-secret", time.Hour).Parse(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)

	created := createFlight(t, r)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "JFK", created.AirportArrival)

	w = do(r, http.MethodGet, flightPath(created.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Flight](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.AirportArrival, got.AirportArrival)
	assert.Equal(t, created.AirportDeparture, got.AirportDeparture)
	assert.Equal(t, created.AviaCompany, got.AviaCompany)

	w = do(r, http.MethodDelete, flightPath(created.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Flight deleted successfully"}`, w.Body.String())

	w = do(r, http.MethodGet, flightPath(created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Flight not found"}`, w.Body.String())
}

func TestRegistrationAndLoginErrors(t *testing.T) {
	r, _ := setupRouter(t, nil)
	register(t, r, "a@b.com", "pw")

	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"missing password", "/api/user/registration", gin.H{"email": "x@b.com"}, http.StatusBadRequest},
		{"missing email", "/api/user/registration", gin.H{"password": "pw"}, http.StatusBadRequest},
		{"duplicate email", "/api/user/registration", gin.H{"email": "a@b.com", "password": "pw"}, http.StatusConflict},
		{"password over 72 bytes", "/api/user/registration", gin.H{"email": "long@b.com", "password": strings.Repeat("p", 73)}, http.StatusBadRequest},
		{"malformed body", "/api/user/registration", "not an object", http.StatusBadRequest},
		{"unknown user", "/api/user/login", gin.H{"email": "nobody@b.com", "password": "pw"}, http.StatusNotFound},
		{"wrong password", "/api/user/login", gin.H{"email": "a@b.com", "password": "nope"}, http.StatusUnauthorized},
		{"login missing fields", "/api/user/login", gin.H{}, http.StatusBadRequest},
		{"login ok", "/api/user/login", gin.H{"email": "a@b.com", "password": "pw"}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tc.path, tc.body, "")
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestAuthCheckRequiresToken(t *testing.T) {
	r, _ := setupRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/user/auth", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/user/auth", nil, "garbage").Code)
}

func TestFlightValidationAndUpdate(t *testing.T) {
	r, _ := setupRouter(t, nil)

	w := do(r, http.MethodPost, "/api/flight", gin.H{"airportArrival": "JFK"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "airportDeparture")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/flight/abc", nil, "").Code)

	f := createFlight(t, r)
	w = do(r, http.MethodPut, flightPath(f.ID), gin.H{"aviaCompany": "United"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[domain.Flight](t, w)
	assert.Equal(t, "United", updated.AviaCompany)
	assert.Equal(t, "LAX", updated.AirportDeparture)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, flightPath(f.ID), gin.H{"aviaCompany": ""}, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, flightPath(f.ID+1), gin.H{"aviaCompany": "KLM"}, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, flightPath(f.ID+1), nil, "").Code)

	w = do(r, http.MethodGet, "/api/flight", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Flight](t, w), 1)
}

func TestEmptyListsRenderArrays(t *testing.T) {
	r, _ := setupRouter(t, nil)

	for _, path := range []string{"/api/flight", "/api/flightnumber", "/api/favorite"} {
		w := do(r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestFlightNumbers(t *testing.T) {
	r, _ := setupRouter(t, nil)
	f := createFlight(t, r)

	w := do(r, http.MethodPost, "/api/flightnumber", gin.H{"aviaCompany": "DL100", "flightId": f.ID}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	number := decode[domain.FlightNumber](t, w)

	w = do(r, http.MethodPost, "/api/flightnumber", gin.H{"aviaCompany": "DL100", "flightId": f.ID}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/flightnumber", gin.H{"aviaCompany": "DL300", "flightId": 999}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/flightnumber/"+strconv.Itoa(int(number.ID)), gin.H{"aviaCompany": "DL101"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DL101", decode[domain.FlightNumber](t, w).AviaCompany)

	w = do(r, http.MethodGet, "/api/flightnumber", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.FlightNumber](t, w), 1)

	// get-by-id and delete are not exposed for flight numbers
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/flightnumber/"+strconv.Itoa(int(number.ID)), nil, "").Code)
}

func TestFavorites(t *testing.T) {
	r, gdb := setupRouter(t, nil)
	register(t, r, "a@b.com", "pw")
	var user domain.User
	require.NoError(t, gdb.Where("email = ?", "a@b.com").First(&user).Error)
	f := createFlight(t, r)

	w := do(r, http.MethodPost, "/api/favorite", gin.H{"country": "US", "userId": user.ID, "flightId": f.ID + 1}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"flight does not exist"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/favorite", gin.H{"userId": user.ID, "flightId": f.ID}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/favorite", gin.H{"country": "US", "userId": user.ID, "flightId": f.ID}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fav := decode[domain.Favorite](t, w)
	assert.Equal(t, user.ID, fav.UserID)

	w = do(r, http.MethodPut, "/api/favorite/"+strconv.Itoa(int(fav.ID)), gin.H{"country": "DE"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DE", decode[domain.Favorite](t, w).Country)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/favorite/999", gin.H{"country": "DE"}, "").Code)

	// Deleting the flight removes its favorites.
	require.Equal(t, http.StatusOK, do(r, http.MethodDelete, flightPath(f.ID), nil, "").Code)
	w = do(r, http.MethodGet, "/api/favorite", nil, "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFlightCacheInvalidation(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r, _ := setupRouter(t, rdb)

	f := createFlight(t, r)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, flightPath(f.ID), nil, "").Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/flight", nil, "").Code)
	assert.True(t, mr.Exists(utils.FlightKey(f.ID)))
	assert.True(t, mr.Exists(utils.FlightListKey))

	require.Equal(t, http.StatusOK, do(r, http.MethodPut, flightPath(f.ID), gin.H{"aviaCompany": "United"}, "").Code)
	assert.False(t, mr.Exists(utils.FlightKey(f.ID)))
	assert.False(t, mr.Exists(utils.FlightListKey))

	w := do(r, http.MethodGet, flightPath(f.ID), nil, "")
	assert.Equal(t, "United", decode[domain.Flight](t, w).AviaCompany)

	require.Equal(t, http.StatusOK, do(r, http.MethodDelete, flightPath(f.ID), nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, flightPath(f.ID), nil, "").Code)
}

func TestAdminUserListing(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	r, gdb := setupRouter(t, rdb)

	_, err := db.SeedAdmin(context.Background(), gdb, utils.NewHasher(bcrypt.MinCost), "admin@b.com", "adminpw")
	require.NoError(t, err)
	userToken := register(t, r, "a@b.com", "pw")

	w := do(r, http.MethodPost, "/api/user/login", gin.H{"email": "admin@b.com", "password": "adminpw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := decode[AuthResponse](t, w).Token

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/user", nil, userToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/user", nil, "").Code)

	w = do(r, http.MethodGet, "/api/user?page=1&page_size=10", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[UserPage](t, w)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.Cached)
	assert.NotContains(t, w.Body.String(), "password")

	w = do(r, http.MethodGet, "/api/user?page=1&page_size=10", nil, adminToken)
	assert.True(t, decode[UserPage](t, w).Cached)

	// A new registration drops the cached pages.
	register(t, r, "c@d.com", "pw")
	w = do(r, http.MethodGet, "/api/user?page=1&page_size=10", nil, adminToken)
	page = decode[UserPage](t, w)
	assert.False(t, page.Cached)
	assert.Equal(t, int64(3), page.Total)
}

func TestAdminUserListingHugePage(t *testing.T) {
	r, gdb := setupRouter(t, nil)
	_, err := db.SeedAdmin(context.Background(), gdb, utils.NewHasher(bcrypt.MinCost), "admin@example.com", "adminpass")
	require.NoError(t, err)
	w := do(r, http.MethodPost, "/api/user/login", gin.H{"email": "admin@example.com", "password": "adminpass"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	adminToken := decode[AuthResponse](t, w).Token

	w = do(r, http.MethodGet, "/api/user?page=9223372036854775807&page_size=100", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[UserPage](t, w)
	assert.Empty(t, page.Users)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestHealthRequestIDAndCORS(t *testing.T) {
	r, _ := setupRouter(t, nil)

	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req, _ := http.NewRequest(http.MethodOptions, "/api/flight", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthHidesFailureDetails(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	r, gdb := setupRouter(t, rdb)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", nil, "").Code)

	mr.Close()
	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())

	require.NoError(t, db.Close(gdb))
	w = do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}
