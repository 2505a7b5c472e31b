package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory UserStore.
type memStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	updates int
	failGet error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*db.User)}
}

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := m.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (m *memStore) CreateUser(_ context.Context, in db.NewUser) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == db.NormalizeEmail(in.Email) {
			return uuid.Nil, db.ErrEmailTaken
		}
	}
	now := time.Now()
	u := &db.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        db.NormalizeEmail(in.Email),
		Phone:        in.Phone,
		PasswordHash: in.PasswordHash,
		PasswordSet:  in.PasswordHash != "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	if u, ok := m.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return db.ErrEmailTaken
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	m.updates++
	return nil
}

// solidRasterizer paints pages × page height at scale 1.
type solidRasterizer struct {
	pages   int
	started chan struct{}
	release chan struct{}
}

func (f *solidRasterizer) Rasterize(_ context.Context, _ string, page rendering.PageOptions) (image.Image, error) {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	pages := max(f.pages, 1)
	img := image.NewRGBA(image.Rect(0, 0, page.WidthPx, pages*export.A4.HeightPx(page.WidthPx)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img, nil
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing", ExpirationHours: 24, Issuer: "resume-builder"}
}

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: config.DefaultBcryptCost}
}

type testServer struct {
	*Server
	store *memStore
	t     *testing.T
}

func newTestServer(t *testing.T, deps Deps) *testServer {
	t.Helper()
	store := newMemStore()
	if deps.Users == nil {
		deps.Users = store
		deps.JWT = testJWTConfig()
		deps.Password = testPasswordConfig()
	}
	if deps.Rasterizer == nil {
		deps.Rasterizer = &solidRasterizer{}
	}
	if deps.RateLimit == nil {
		deps.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(config.Config{KeepLastEntry: true}, deps)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return &testServer{Server: s, store: store, t: t}
}

func (ts *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (ts *testServer) createSession() sessionResponse {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/builder/sessions", nil)
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[sessionResponse](ts.t, w)
}
