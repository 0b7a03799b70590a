package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/paani/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(server.URL+"/", opts...)
}

func TestGetPortfolio(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolio", r.URL.Path)
		assert.Empty(t, r.Header.Get(PasswordHeader))
		_, _ = w.Write([]byte(`{"caseStudies":{"store":[],"website":[]},"photos":[{"id":7,"src":"/uploads/a.jpg","alt":"","category":"Model"}],"videos":[]}`))
	})

	doc, err := c.GetPortfolio(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Photos, 1)
	assert.Equal(t, int64(7), doc.Photos[0].ID)
}

func TestSavePortfolioSendsPassword(t *testing.T) {
	var got domain.PortfolioDocument
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "pw", r.Header.Get(PasswordHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":"Portfolio updated successfully"}`))
	}, WithPassword("pw"))

	doc := domain.NewPortfolioDocument()
	doc.Videos = []domain.Video{{ID: 1, Title: "Reel"}}
	require.NoError(t, c.SavePortfolio(context.Background(), doc))
	assert.Equal(t, "Reel", got.Videos[0].Title)
}

func TestAPIErrorCarriesServerBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to update portfolio data","details":"disk full"}`))
	})

	err := c.SavePortfolio(context.Background(), domain.NewPortfolioDocument())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to update portfolio data", apiErr.Message)
	assert.Equal(t, "disk full", apiErr.Details)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.GetPortfolio(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/login":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "12345" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Incorrect password"}`))
				return
			}
			_, _ = w.Write([]byte(`{"message":"Login successful"}`))
		case "/api/portfolio":
			assert.Equal(t, "12345", r.Header.Get(PasswordHeader))
			_, _ = w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	err := c.Login(ctx, "wrong")
	assert.True(t, IsUnauthorized(err))

	require.NoError(t, c.Login(ctx, "12345"))
	require.NoError(t, c.SavePortfolio(ctx, domain.NewPortfolioDocument()))
}

func TestUpload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "shoot.jpg", header.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))
		_, _ = w.Write([]byte(`{"url":"/uploads/1-shoot.jpg","message":"File uploaded successfully"}`))
	})

	url, err := c.Upload(context.Background(), "shoot.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-shoot.jpg", url)
}

func TestChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "price?", body["question"])
		assert.Equal(t, "Plan A", body["context"])
		_, _ = w.Write([]byte(`{"response":"Rs 3,500"}`))
	})

	got, err := c.Chat(context.Background(), "price?", "Plan A")
	require.NoError(t, err)
	assert.Equal(t, "Rs 3,500", got)
}
