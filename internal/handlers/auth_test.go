package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/velinpetkov/task-tracker-api/internal/dto"
	"github.com/velinpetkov/task-tracker-api/internal/middleware"
	"github.com/velinpetkov/task-tracker-api/internal/models"
	"github.com/velinpetkov/task-tracker-api/internal/repository"
	"github.com/velinpetkov/task-tracker-api/internal/services"
)

type authTestEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	authService  *services.AuthService
	tokenService *services.TokenService
	userRepo     repository.UserRepository
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	tokenService := services.NewTokenService("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, tokenService)
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", handler.Register)
	r.POST("/login", handler.Login)
	r.GET("/me", middleware.RequireAuth(tokenService), handler.GetCurrentUser)
	r.PUT("/profile/:user_id", middleware.RequireAuth(tokenService), handler.UpdateProfile)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:           db,
		router:       r,
		authService:  authService,
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "User registered successfully", response["message"])

	user, err := env.userRepo.FindByEmail("a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "supersecret", user.PasswordHash, "password must be stored hashed")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	first, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "othersecret",
	})

	require.Equal(t, http.StatusConflict, w.Code)

	// First record is unaffected.
	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count)

	unchanged, err := env.userRepo.FindByID(first.ID)
	require.NoError(t, err)
	require.Equal(t, first.PasswordHash, unchanged.PasswordHash)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "short",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response["access_token"])

	// The issued token verifies back to the registered user's ID.
	verifiedID, err := env.tokenService.Verify(response["access_token"])
	require.NoError(t, err)
	require.Equal(t, user.ID, verifiedID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrongpassword",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Empty(t, response["access_token"])
	require.NotEmpty(t, response["message"])
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokenService.Issue(user.ID)
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, "a@x.com", response.Email)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokenService.Issue(user.ID)
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPut, fmt.Sprintf("/profile/%d", user.ID), token, map[string]string{
		"email": "b@x.com",
	})

	require.Equal(t, http.StatusOK, w.Code)

	updated, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "b@x.com", updated.Email)
}

func TestAuthHandler_UpdateProfile_OwnershipMismatch(t *testing.T) {
	env := setupAuthTestEnv(t)

	userA, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	userB, err := env.authService.Register(services.RegisterInput{
		Email:    "b@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	tokenA, err := env.tokenService.Issue(userA.ID)
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPut, fmt.Sprintf("/profile/%d", userB.ID), tokenA, map[string]string{
		"email": "hijacked@x.com",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	// B's record is unchanged.
	unchanged, err := env.userRepo.FindByID(userB.ID)
	require.NoError(t, err)
	require.Equal(t, "b@x.com", unchanged.Email)
}

func TestAuthHandler_UpdateProfile_EmailTaken(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "a@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	userB, err := env.authService.Register(services.RegisterInput{
		Email:    "b@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	tokenB, err := env.tokenService.Issue(userB.ID)
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPut, fmt.Sprintf("/profile/%d", userB.ID), tokenB, map[string]string{
		"email": "a@x.com",
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_UpdateProfile_NoToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPut, "/profile/1", "", map[string]string{
		"email": "b@x.com",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
