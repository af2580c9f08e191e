package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authHandler "github.com/teame/hospital-api/internal/handler/auth"
	"github.com/teame/hospital-api/internal/repository/memory"
	authService "github.com/teame/hospital-api/internal/service/auth"
	pkgauth "github.com/teame/hospital-api/pkg/auth"
	"github.com/teame/hospital-api/pkg/security"
	"github.com/teame/hospital-api/pkg/validator"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	svc := authService.NewService(
		store.Accounts(),
		pkgauth.NewJWTService("test-secret", 0),
		security.NewBcryptHasher(bcrypt.MinCost),
	)

	r := gin.New()
	v1 := r.Group("/api/v1")
	authHandler.NewHandler(svc, validator.New()).RegisterRoutes(v1)
	return r
}

func post(t *testing.T, r *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registration(username string) map[string]interface{} {
	return map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cretpass",
		"role":     "PATIENT",
		"name":     "John Doe",
		"age":      40,
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r := setupRouter()

	w := post(t, r, "/api/v1/auth/register", registration("jdoe"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Token  string `json:"token"`
			Role   string `json:"role"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "PATIENT", resp.Data.Role)
	assert.Equal(t, "ACTIVATED", resp.Data.Status)
	assert.NotEmpty(t, resp.Data.Token)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	r := setupRouter()

	post(t, r, "/api/v1/auth/register", registration("jdoe"))
	w := post(t, r, "/api/v1/auth/register", registration("jdoe"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter()

	body := registration("jdoe")
	body["password"] = "short"
	w := post(t, r, "/api/v1/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = registration("jdoe")
	body["role"] = "SUPERUSER"
	w = post(t, r, "/api/v1/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	r := setupRouter()
	post(t, r, "/api/v1/auth/register", registration("jdoe"))

	w := post(t, r, "/api/v1/auth/login", map[string]interface{}{
		"username": "jdoe", "password": "s3cretpass",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(t, r, "/api/v1/auth/login", map[string]interface{}{
		"username": "jdoe", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
