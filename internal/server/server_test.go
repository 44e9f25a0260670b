package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/repository"
	"photoshare/internal/service"
	"photoshare/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer wires a full Server against in-memory sqlite and miniredis,
// with the real route table. Prometheus middleware stays off so repeated
// setups do not re-register collectors.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		JWTSecret:      "test-secret-key-at-least-32-chars!",
		Port:           "0",
		PhotoDir:       t.TempDir(),
		PhotoMaxSizeMB: 10,
	}

	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	store := storage.NewDiskStore(cfg.PhotoDir)

	s := &Server{
		config:    cfg,
		db:        db,
		redis:     rdb,
		store:     store,
		userRepo:  userRepo,
		photoRepo: photoRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.photoService = service.NewPhotoService(photoRepo, userRepo, store, cfg)
	s.commentService = service.NewCommentService(photoRepo, userRepo)
	s.accountService = service.NewAccountService(userRepo, photoRepo, store)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(data) > 0 {
		_ = json.Unmarshal(data, &decoded)
	}
	return resp, decoded
}

// doJSONList performs an authenticated GET expecting a 200 with a JSON array.
func doJSONList(t *testing.T, app *fiber.App, path, token string) []any {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func registerTestUser(t *testing.T, s *Server, loginName string) (uint, string) {
	t.Helper()

	user, err := s.userService.Register(context.Background(), service.RegisterInput{
		LoginName: loginName,
		Password:  "password123",
		FirstName: "Test",
		LastName:  loginName,
	})
	require.NoError(t, err)

	token, err := s.generateToken(user.ID, user.LoginName)
	require.NoError(t, err)
	return user.ID, token
}

func uploadTestPhoto(t *testing.T, app *fiber.App, token string, fileName string, content []byte) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/photos", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var photo map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&photo))
	return photo
}
