package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestRouter wires the full stack against an in-memory database, the
// same way cmd/api does against postgres. The websocket hub is omitted.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Setenv("JWT_SECRET", "handler-test-secret")
	t.Setenv("REFRESH_SECRET", "handler-refresh-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, database.Migrate(db), "failed to migrate tables")
	require.NoError(t, database.SeedReferenceData(db))

	userRepo := repository.NewUserRepository(db)
	controllerRepo := repository.NewControllerRepository(db)
	savedRepo := repository.NewSavedControllerRepository(db)
	txManager := repository.NewTransactionManager(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(controllerRepo, savedRepo, txManager, nil)

	router := gin.New()
	NewAuthHandler(authService).RegisterRoutes(router.Group(""))
	NewControllerHandler(catalogService).RegisterRoutes(router.Group(""))
	NewProfileHandler(catalogService).RegisterRoutes(router.Group(""))

	return router, db
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(router *gin.Engine, method, path string, body interface{}, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerUser creates an account and returns the access token and the
// refresh cookie from the response.
func registerUser(t *testing.T, router *gin.Engine, name, email string) (string, *http.Cookie) {
	rec := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)

	var refreshCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "refreshToken" {
			refreshCookie = cookie
		}
	}
	require.NotNil(t, refreshCookie, "register must set the refresh cookie")
	return token, refreshCookie
}

// registerAdmin creates an account, flips the admin flag and logs in
// again so the returned token carries is_admin.
func registerAdmin(t *testing.T, router *gin.Engine, db *gorm.DB, email string) string {
	registerUser(t, router, "Admin", email)
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", email).Update("is_admin", true).Error)

	rec := doJSON(router, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeBody(t, rec)["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func createController(t *testing.T, router *gin.Engine, adminToken, name string) string {
	rec := doJSON(router, http.MethodPost, "/controllers", map[string]interface{}{
		"controller": map[string]interface{}{
			"name":         name,
			"manufacturer": "AccessCo",
			"type":         "Gamepad",
			"price":        59.99,
		},
		"platforms": []map[string]interface{}{
			{"platform_name": "PC", "compatibility_notes": "Plug and play"},
			{"platform_name": "Xbox", "requires_adapter": true},
		},
		"functional_needs": []map[string]interface{}{
			{"need_name": "Weak Grip", "suitability": "High"},
		},
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	id, _ := decodeBody(t, rec)["controller_id"].(string)
	require.NotEmpty(t, id)
	return id
}
