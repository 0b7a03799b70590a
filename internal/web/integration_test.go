package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vbonduro/paani/internal/assetstore/local"
	"github.com/vbonduro/paani/internal/chat"
	"github.com/vbonduro/paani/internal/contentstore"
	"github.com/vbonduro/paani/internal/domain"
	"github.com/vbonduro/paani/internal/pricing"
	"github.com/vbonduro/paani/internal/service"
	"github.com/vbonduro/paani/internal/site"
	"github.com/vbonduro/paani/internal/web"
	"github.com/vbonduro/paani/internal/web/templates"
)

// minimalJPEG is 512 bytes with the JPEG magic bytes header followed by zeros.
var minimalJPEG = func() []byte {
	b := make([]byte, 512)
	b[0] = 0xFF
	b[1] = 0xD8
	b[2] = 0xFF
	b[3] = 0xE0
	return b
}()

type stubResponder struct {
	text string
	err  error
}

func (s *stubResponder) Respond(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

type testEnv struct {
	srv       *httptest.Server
	content   *contentstore.FileStore
	uploadDir string
}

type envConfig struct {
	responder      chat.Responder
	writesDisabled bool
	opts           web.Options
}

// newTestEnv starts a real web.Server backed by a seeded portfolio file and a
// local upload directory, both under t.TempDir().
func newTestEnv(t *testing.T, cfg envConfig) *testEnv {
	t.Helper()
	dir := t.TempDir()
	content := contentstore.NewFileStore(filepath.Join(dir, "data", "portfolio.json"))
	if _, err := contentstore.Seed(context.Background(), content, false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	uploadDir := filepath.Join(dir, "uploads")
	assets := local.NewAssetStore(uploadDir, "/uploads/")

	catalogue, err := pricing.Load()
	if err != nil {
		t.Fatalf("load pricing: %v", err)
	}

	svc := service.NewPortfolioService(content, assets, cfg.responder, cfg.writesDisabled, slog.Default())
	renderer := site.NewRenderer(content, slog.Default())
	srv := httptest.NewServer(web.NewServer(svc, catalogue, renderer, templates.FS, slog.Default(), cfg.opts))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, content: content, uploadDir: uploadDir}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any, header http.Header) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) getPortfolio(t *testing.T) *domain.PortfolioDocument {
	t.Helper()
	resp, err := http.Get(e.srv.URL + "/api/portfolio")
	if err != nil {
		t.Fatalf("GET /api/portfolio: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, b)
	}
	var doc domain.PortfolioDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode portfolio: %v", err)
	}
	return &doc
}

func decodeError(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

// buildMultipartBody creates a multipart/form-data body. An empty field
// produces a form with no file part at all.
func buildMultipartBody(t *testing.T, field, filename string, data []byte) (body *bytes.Buffer, contentType string) {
	t.Helper()
	body = &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write file data: %v", err)
		}
	} else if err := w.WriteField("note", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

// TestIntegration_SeededPortfolioShape verifies that a fresh deployment serves
// the seed document with every list present.
func TestIntegration_SeededPortfolioShape(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{})

	resp, err := http.Get(env.srv.URL + "/api/portfolio")
	if err != nil {
		t.Fatalf("GET /api/portfolio: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"caseStudies", "photos", "videos"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %v", key, raw)
		}
	}
	if string(raw["photos"]) != "[]" || string(raw["videos"]) != "[]" {
		t.Errorf("expected empty arrays, got photos=%s videos=%s", raw["photos"], raw["videos"])
	}
	var cs map[string]json.RawMessage
	if err := json.Unmarshal(raw["caseStudies"], &cs); err != nil {
		t.Fatalf("decode caseStudies: %v", err)
	}
	if string(cs["store"]) != "[]" || string(cs["website"]) != "[]" {
		t.Errorf("expected empty case study lists, got %s", raw["caseStudies"])
	}
}

// TestIntegration_LastWriteWins verifies that two sequential saves leave the
// second document in place, with nothing of the first merged in.
func TestIntegration_LastWriteWins(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{})

	a := domain.NewPortfolioDocument()
	a.Photos = []domain.Photo{{ID: 1, Src: "/uploads/a.jpg", Alt: "a", Category: domain.PhotoCategoryModel}}
	b := domain.NewPortfolioDocument()
	b.Videos = []domain.Video{{ID: 2, Title: "Launch", Category: domain.VideoCategoryCommercial}}

	for _, doc := range []*domain.PortfolioDocument{a, b} {
		resp := env.postJSON(t, "/api/portfolio", doc, nil)
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
		}
	}

	got := env.getPortfolio(t)
	if len(got.Photos) != 0 {
		t.Errorf("photos from the first save leaked: %+v", got.Photos)
	}
	if len(got.Videos) != 1 || got.Videos[0].Title != "Launch" {
		t.Errorf("videos = %+v, want the second document's", got.Videos)
	}
}

// TestIntegration_SaveWritesDisabled verifies the read-only deployment path
// rejects the save and leaves the stored document untouched.
func TestIntegration_SaveWritesDisabled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{writesDisabled: true})
	before, err := os.ReadFile(env.content.Path())
	if err != nil {
		t.Fatalf("read content: %v", err)
	}

	doc := domain.NewPortfolioDocument()
	doc.Photos = []domain.Photo{{ID: 1}}
	resp := env.postJSON(t, "/api/portfolio", doc, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); !strings.Contains(body["details"], "durable") {
		t.Errorf("expected durable storage guidance, got %v", body)
	}

	after, err := os.ReadFile(env.content.Path())
	if err != nil {
		t.Fatalf("read content: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("content changed on a disabled write")
	}
}

// TestIntegration_UploadAndServe verifies an uploaded file is stored and can
// be fetched back from the returned URL.
func TestIntegration_UploadAndServe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{})

	body, contentType := buildMultipartBody(t, "file", "brand shoot.jpg", minimalJPEG)
	resp, err := http.Post(env.srv.URL+"/api/upload", contentType, body)
	if err != nil {
		t.Fatalf("POST /api/upload: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, b)
	}

	var uploaded struct {
		URL     string `json:"url"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if !strings.HasPrefix(uploaded.URL, "/uploads/") || !strings.HasSuffix(uploaded.URL, "-brand-shoot.jpg") {
		t.Errorf("unexpected url %q", uploaded.URL)
	}
	if uploaded.Message == "" {
		t.Errorf("expected a success message")
	}

	get, err := http.Get(env.srv.URL + uploaded.URL)
	if err != nil {
		t.Fatalf("GET %s: %v", uploaded.URL, err)
	}
	defer func() { _ = get.Body.Close() }()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", get.StatusCode)
	}
	data, err := io.ReadAll(get.Body)
	if err != nil {
		t.Fatalf("read asset: %v", err)
	}
	if !bytes.Equal(data, minimalJPEG) {
		t.Errorf("served bytes differ from uploaded bytes")
	}
	if ct := get.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
}

// TestIntegration_UploadWithoutFile verifies a form with no "file" part is
// rejected and nothing is written.
func TestIntegration_UploadWithoutFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{})

	body, contentType := buildMultipartBody(t, "", "", nil)
	resp, err := http.Post(env.srv.URL+"/api/upload", contentType, body)
	if err != nil {
		t.Fatalf("POST /api/upload: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp)["error"]; got != "No file uploaded" {
		t.Errorf("error = %q", got)
	}

	entries, err := os.ReadDir(env.uploadDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files, found %d", len(entries))
	}
}

// TestIntegration_Chat covers the success path and the upstream failure path
// with and without error details.
func TestIntegration_Chat(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	req := map[string]string{"question": "How much is Plan A?", "context": "Plan A: Rs 3,500/Month"}

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t, envConfig{responder: &stubResponder{text: "Plan A costs Rs 3,500 a month."}})
		resp := env.postJSON(t, "/api/chat", req, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["response"] != "Plan A costs Rs 3,500 a month." {
			t.Errorf("response = %q", body["response"])
		}
	})

	t.Run("failure shows details outside production", func(t *testing.T) {
		env := newTestEnv(t, envConfig{
			responder: &stubResponder{err: errors.New("quota exhausted")},
			opts:      web.Options{ShowErrorDetails: true},
		})
		resp := env.postJSON(t, "/api/chat", req, nil)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		body := decodeError(t, resp)
		if body["error"] != "Failed to process request" {
			t.Errorf("error = %q", body["error"])
		}
		if !strings.Contains(body["details"], "quota exhausted") {
			t.Errorf("details = %q", body["details"])
		}
	})

	t.Run("failure hides details in production", func(t *testing.T) {
		env := newTestEnv(t, envConfig{responder: &stubResponder{err: errors.New("quota exhausted")}})
		resp := env.postJSON(t, "/api/chat", req, nil)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		body := decodeError(t, resp)
		if _, ok := body["details"]; ok {
			t.Errorf("details leaked: %v", body)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(t, envConfig{})
		resp := env.postJSON(t, "/api/chat", req, nil)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", resp.StatusCode)
		}
	})
}

// TestIntegration_AdminGuard verifies writes need the admin password when
// one is configured.
func TestIntegration_AdminGuard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{opts: web.Options{AdminPassword: "s3cret"}})
	doc := domain.NewPortfolioDocument()

	resp := env.postJSON(t, "/api/portfolio", doc, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without password, got %d", resp.StatusCode)
	}

	resp = env.postJSON(t, "/api/portfolio", doc, http.Header{"X-Admin-Password": {"s3cret"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with password, got %d", resp.StatusCode)
	}

	resp = env.postJSON(t, "/api/admin/login", map[string]string{"password": "wrong"}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong login, got %d", resp.StatusCode)
	}
	resp = env.postJSON(t, "/api/admin/login", map[string]string{"password": "s3cret"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", resp.StatusCode)
	}
}

// TestIntegration_HomePage verifies saved content shows up on the public page.
func TestIntegration_HomePage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{})

	doc := domain.NewPortfolioDocument()
	doc.CaseStudies.Store = []domain.Project{{Title: "Corner Store", Summary: "Full rebrand"}}
	if resp := env.postJSON(t, "/api/portfolio", doc, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("save: %d", resp.StatusCode)
	}

	resp, err := http.Get(env.srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(b), "Corner Store") {
		t.Errorf("home page does not contain the saved project:\n%s", b)
	}
	if !strings.Contains(string(b), "No photos yet.") {
		t.Errorf("expected empty photo section")
	}
}

// TestIntegration_UnknownMembersSurviveSave verifies that members the server
// does not model are stored and served back unchanged.
func TestIntegration_UnknownMembersSurviveSave(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestEnv(t, envConfig{})

	body := json.RawMessage(`{
		"caseStudies": {"store": [], "website": []},
		"photos": [{"id": 1, "src": "x", "alt": "", "category": "Model", "featured": true}],
		"videos": [],
		"hero": {"headline": "Grow with us"}
	}`)
	resp := env.postJSON(t, "/api/portfolio", body, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	get, err := http.Get(env.srv.URL + "/api/portfolio")
	if err != nil {
		t.Fatalf("GET /api/portfolio: %v", err)
	}
	defer func() { _ = get.Body.Close() }()

	var raw struct {
		Photos []map[string]json.RawMessage `json:"photos"`
		Hero   json.RawMessage              `json:"hero"`
	}
	if err := json.NewDecoder(get.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw.Hero) != `{"headline":"Grow with us"}` {
		t.Errorf("hero = %s, want it kept", raw.Hero)
	}
	if len(raw.Photos) != 1 || string(raw.Photos[0]["featured"]) != "true" {
		t.Errorf("photos = %v, want featured kept", raw.Photos)
	}

	stored, err := os.ReadFile(env.content.Path())
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !strings.Contains(string(stored), `"featured": true`) {
		t.Errorf("stored file lost the photo member:\n%s", stored)
	}
}
