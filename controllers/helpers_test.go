package controllers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"image-upload-backend/config"
	"image-upload-backend/controllers"
	"image-upload-backend/models"
	"image-upload-backend/repositories"
	"image-upload-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memProducts adalah ProductRepository in-memory untuk test end-to-end handler.
type memProducts struct {
	mu       sync.Mutex
	products []models.Product
}

func (m *memProducts) Insert(_ context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.products = append(m.products, *p)
	return nil
}

func (m *memProducts) FindAll(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Product{}, m.products...), nil
}

func (m *memProducts) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

type mockProducts struct {
	mock.Mock
}

func (m *mockProducts) Insert(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) FindAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockProducts) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockAdmins struct {
	mock.Mock
}

func (m *mockAdmins) Create(ctx context.Context, a *models.Admin) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAdmins) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

func (m *mockAdmins) FindAll(ctx context.Context) ([]models.Admin, error) {
	args := m.Called(ctx)
	admins, _ := args.Get(0).([]models.Admin)
	return admins, args.Error(1)
}

func (m *mockAdmins) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeMirror struct {
	url string
	err error
}

func (f fakeMirror) Mirror(context.Context, string) (string, error) { return f.url, f.err }

var errBoom = errors.New("boom")

const testPasetoKey = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	cfg    *config.AppConfig
	ctrl   *controllers.Controller
	router *gin.Engine
}

func newTestEnv(t *testing.T, products repositories.ProductRepository, admins repositories.AdminRepository, mutate ...func(*config.AppConfig)) *testEnv {
	t.Helper()

	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("<html>index</html>"), 0o644))

	cfg := &config.AppConfig{
		Env:                 "test",
		PublicDir:           public,
		UploadDir:           filepath.Join(public, "uploads"),
		DefaultProductImage: "/uploads/default_product.jpg",
		MaxUploadSize:       1 << 20,
		MaxExtractSize:      1 << 20,
		AllowedOrigins:      []string{"*"},
		PasetoSecretKey:     []byte(testPasetoKey),
	}
	for _, m := range mutate {
		m(cfg)
	}

	if products == nil {
		products = &memProducts{}
	}
	if admins == nil {
		admins = &mockAdmins{}
	}

	ctrl := controllers.New(cfg, products, admins, fakePinger{}, nil)
	return &testEnv{cfg: cfg, ctrl: ctrl, router: routes.Setup(ctrl)}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, body := range entries {
		part, err := w.Create(name)
		require.NoError(t, err)
		_, err = part.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func newGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}
