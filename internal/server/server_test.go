package server

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/admintoken"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/ratelimit"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/media"
	"github.com/NoobYoup/amis-nextjs-sub001/pkg/store"
)

// memoryHost keeps uploaded objects in a map so handler tests need no real
// object storage.
type memoryHost struct {
	mu      sync.Mutex
	objects map[string]string
}

func (h *memoryHost) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (media.Object, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return media.Object{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects[key] = string(body)
	return media.Object{Key: key, URL: "https://media.test/" + key}, nil
}

func (h *memoryHost) Destroy(_ context.Context, key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.objects[key]; !ok {
		return errors.New("object missing")
	}
	delete(h.objects, key)
	return nil
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type testEnv struct {
	server     *httptest.Server
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T, adminLimit int) *testEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	jwksServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "kid-1",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(jwksServer.Close)

	st, err := store.New(sqlite.Open(filepath.Join(t.TempDir(), "server.db")))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	appCore, err := app.New(app.Config{
		Store: st,
		Media: &memoryHost{objects: map[string]string{}},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	verifier, err := admintoken.NewVerifier(admintoken.Config{
		JWKSURL:  jwksServer.URL,
		Issuer:   "issuer-a",
		Audience: "aud-a",
	})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	redis := miniredis.RunT(t)
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(redis.Addr(), "", "test:admin", adminLimit, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	srv := New(Config{
		App:            appCore,
		TokenVerifier:  verifier,
		AdminLimiter:   limiter,
		RequestTimeout: 10 * time.Second,
	})
	httpServer := httptest.NewServer(srv.Router())
	t.Cleanup(httpServer.Close)

	return &testEnv{
		server:     httpServer,
		adminToken: signRole(t, key, admintoken.RoleAdmin),
		userToken:  signRole(t, key, "viewer"),
	}
}

func signRole(t *testing.T, key *rsa.PrivateKey, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, adminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "issuer-a",
			Audience:  jwt.ClaimStrings{"aud-a"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	token.Header["kid"] = "kid-1"
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, token string, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (e *testEnv) createCategory(t *testing.T, name string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/categories", e.adminToken, "application/json",
		strings.NewReader(`{"name":"`+name+`"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	return created.ID
}

func multipartBody(t *testing.T, fields map[string]string, fileField string, files map[string]string) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for name, content := range files {
		part, err := w.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return w.FormDataContentType(), &buf
}

func TestPublicListingNeedsNoToken(t *testing.T) {
	env := newTestEnv(t, 100)

	resp := env.do(t, http.MethodGet, "/api/activities?page=1", "", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Data  []any `json:"data"`
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Pages int   `json:"pages"`
	}
	decodeBody(t, resp, &body)
	if body.Total != 0 || body.Page != 1 || body.Pages != 0 {
		t.Fatalf("unexpected empty listing %+v", body)
	}
}

func TestMutationsRequireAdminToken(t *testing.T) {
	env := newTestEnv(t, 100)

	resp := env.do(t, http.MethodPost, "/api/categories", "", "application/json",
		strings.NewReader(`{"name":"Tin tức"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPost, "/api/categories", env.userToken, "application/json",
		strings.NewReader(`{"name":"Tin tức"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin role, got %d", resp.StatusCode)
	}
}

func TestCategoryCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t, 100)

	id := env.createCategory(t, "Hoạt động")

	// Case-insensitive duplicate is rejected with a named code.
	resp := env.do(t, http.MethodPost, "/api/categories", env.adminToken, "application/json",
		strings.NewReader(`{"name":"HOẠT ĐỘNG"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", resp.StatusCode)
	}
	var dup struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &dup)
	if dup.Code != "DUPLICATE_NAME" {
		t.Fatalf("expected DUPLICATE_NAME, got %s", dup.Code)
	}

	resp = env.do(t, http.MethodPut, "/api/categories/"+id, env.adminToken, "application/json",
		strings.NewReader(`{"name":"Sự kiện"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on rename, got %d", resp.StatusCode)
	}
	var renamed struct {
		Name string `json:"name"`
	}
	decodeBody(t, resp, &renamed)
	if renamed.Name != "Sự kiện" {
		t.Fatalf("expected renamed category, got %s", renamed.Name)
	}

	resp = env.do(t, http.MethodDelete, "/api/categories/"+id, env.adminToken, "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodGet, "/api/categories/"+id, "", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestDeleteCategoryInUseReportsCount(t *testing.T) {
	env := newTestEnv(t, 100)

	id := env.createCategory(t, "Hoạt động")
	contentType, body := multipartBody(t, map[string]string{
		"title":       "Hội thao",
		"description": "Giải thể thao",
		"categoryId":  id,
		"author":      "admin",
		"date":        "2025-03-10",
	}, "images", nil)
	resp := env.do(t, http.MethodPost, "/api/activities", env.adminToken, contentType, body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create activity: expected 201, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodDelete, "/api/categories/"+id, env.adminToken, "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for in-use category, got %d", resp.StatusCode)
	}
	var errBody struct {
		Code          string `json:"code"`
		ActivityCount int64  `json:"activityCount"`
	}
	decodeBody(t, resp, &errBody)
	if errBody.Code != "CATEGORY_IN_USE" || errBody.ActivityCount != 1 {
		t.Fatalf("unexpected error body %+v", errBody)
	}
}

func TestActivityMultipartLifecycle(t *testing.T) {
	env := newTestEnv(t, 100)
	id := env.createCategory(t, "Hoạt động")

	contentType, body := multipartBody(t, map[string]string{
		"title":       "Hội thao mùa xuân",
		"description": "Giải thể thao toàn trường",
		"categoryId":  id,
		"author":      "admin",
		"date":        "2025-03-10",
	}, "images", map[string]string{"one.jpg": "first", "two.jpg": "second"})
	resp := env.do(t, http.MethodPost, "/api/activities", env.adminToken, contentType, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID        string `json:"id"`
		Thumbnail string `json:"thumbnail"`
		Images    []struct {
			URL string `json:"url"`
		} `json:"images"`
	}
	decodeBody(t, resp, &created)
	if len(created.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(created.Images))
	}
	if created.Thumbnail != created.Images[0].URL {
		t.Fatalf("expected thumbnail to be first image")
	}

	// Partial update over multipart touches only the supplied field.
	contentType, body = multipartBody(t, map[string]string{"title": "Hội thao 2025"}, "images", nil)
	resp = env.do(t, http.MethodPut, "/api/activities/"+created.ID, env.adminToken, contentType, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", resp.StatusCode)
	}
	var updated struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		Images []any  `json:"images"`
	}
	decodeBody(t, resp, &updated)
	if updated.Title != "Hội thao 2025" || updated.Author != "admin" || len(updated.Images) != 2 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	resp = env.do(t, http.MethodGet, "/api/activities?search=hội+thao", "", "", nil)
	var listing struct {
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	}
	decodeBody(t, resp, &listing)
	if listing.Total != 1 || listing.Pages != 1 {
		t.Fatalf("unexpected listing %+v", listing)
	}

	resp = env.do(t, http.MethodDelete, "/api/activities/"+created.ID, env.adminToken, "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.StatusCode)
	}
	resp = env.do(t, http.MethodGet, "/api/activities/"+created.ID, "", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestAdminMutationRateLimit(t *testing.T) {
	env := newTestEnv(t, 1)

	resp := env.do(t, http.MethodPost, "/api/categories", env.adminToken, "application/json",
		strings.NewReader(`{"name":"Một"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first mutation expected 201, got %d", resp.StatusCode)
	}

	resp = env.do(t, http.MethodPost, "/api/categories", env.adminToken, "application/json",
		strings.NewReader(`{"name":"Hai"}`))
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second mutation expected 429, got %d", resp.StatusCode)
	}
	var errBody struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &errBody)
	if errBody.Code != "RATE_LIMITED" {
		t.Fatalf("expected RATE_LIMITED, got %s", errBody.Code)
	}

	// Reads stay unthrottled.
	resp = env.do(t, http.MethodGet, "/api/categories", "", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 read, got %d", resp.StatusCode)
	}
}

func TestQueryPagingCapsLimit(t *testing.T) {
	cases := []struct {
		query string
		page  int
		limit int
	}{
		{"page=2&limit=20", 2, 20},
		{"limit=1000000", 0, maxPageSize},
		{"page=1&limit=100", 1, 100},
		{"page=-3&limit=-1", -3, -1},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/activities?"+tc.query, nil)
		page, limit := queryPaging(req)
		if page != tc.page || limit != tc.limit {
			t.Fatalf("queryPaging(%q) = (%d, %d), want (%d, %d)", tc.query, page, limit, tc.page, tc.limit)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, 100)

	resp := env.do(t, http.MethodPatch, "/api/tuition", env.adminToken, "application/json", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestTuitionJSONLifecycle(t *testing.T) {
	env := newTestEnv(t, 100)

	resp := env.do(t, http.MethodPost, "/api/tuition", env.adminToken, "application/json",
		strings.NewReader(`{"type":"grade","grade":"Lớp 1","level":"Tiểu học","tuition":"2.500.000"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	resp = env.do(t, http.MethodPut, "/api/tuition/"+created.ID, env.adminToken, "application/json",
		strings.NewReader(`{"tuition":"2.800.000"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", resp.StatusCode)
	}
	var updated struct {
		Tuition string `json:"tuition"`
		Grade   string `json:"grade"`
	}
	decodeBody(t, resp, &updated)
	if updated.Tuition != "2.800.000" || updated.Grade != "Lớp 1" {
		t.Fatalf("unexpected update %+v", updated)
	}

	// Unknown tuition type is a validation error.
	resp = env.do(t, http.MethodPost, "/api/tuition", env.adminToken, "application/json",
		strings.NewReader(`{"type":"monthly","grade":"Lớp 1","level":"Tiểu học","tuition":"1"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", resp.StatusCode)
	}
	var errBody struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &errBody)
	if errBody.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", errBody.Code)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, 100)
	resp := env.do(t, http.MethodGet, "/healthz", "", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
