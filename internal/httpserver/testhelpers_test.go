package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/domain"
	"clinic-content-api/internal/media"
	authsvc "clinic-content-api/internal/service/auth"
	blogsvc "clinic-content-api/internal/service/blog"
	"clinic-content-api/internal/service/chat"
	herosvc "clinic-content-api/internal/service/hero"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
	"clinic-content-api/internal/testutil/memstore"
)

const (
	testAdminEmail    = "surgeon@clinic.test"
	testAdminPassword = "correct-horse"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubChatProvider struct {
	answer string
	err    error
}

func (p stubChatProvider) Name() string { return "stub" }

func (p stubChatProvider) Complete(context.Context, string, []chat.Message, string) (string, error) {
	return p.answer, p.err
}

type testEnv struct {
	router  *gin.Engine
	store   *memstore.Store
	admin   *domain.Admin
	uploads int
}

func newTestEnv(t *testing.T, providers ...chat.Provider) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{store: memstore.New()}
	hash, err := authsvc.HashPassword(testAdminPassword)
	require.NoError(t, err)
	env.admin, err = env.store.Admins.Upsert(context.Background(), domain.Admin{
		Email: testAdminEmail, PasswordHash: hash, Name: "Dr. Rao", Role: "admin",
	})
	require.NoError(t, err)

	uploader := media.UploaderFunc(func(_ context.Context, r io.Reader, folder string) (string, error) {
		env.uploads++
		_, _ = io.Copy(io.Discard, r)
		return "https://cdn.test/" + folder + "/img.jpg", nil
	})
	c := cache.NewMemory()
	logger := zap.NewNop()

	env.router = buildRouter(logger, Deps{
		Auth:         authsvc.New(env.store.Admins, "test-secret", 7*24*time.Hour, logger),
		Blogs:        blogsvc.New(env.store.Blogs, uploader, c, time.Minute, logger),
		Heroes:       herosvc.New(env.store.Heroes, uploader, c, time.Minute, logger),
		Testimonials: testimonialsvc.New(env.store.Testimonials, uploader, c, time.Minute, logger),
		Chat:         chat.New(providers, time.Second, logger),
		DB:           stubPinger{},
	}, Options{AllowedOrigins: []string{"http://localhost:5173"}})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": testAdminEmail, "password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
