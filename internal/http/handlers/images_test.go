package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/storage"
	"server/internal/upload"
)

var (
	jpegSample = append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{0x01}, 64)...)
	gifSample  = append([]byte("GIF89a"), bytes.Repeat([]byte{0x02}, 64)...)
)

func newUploadApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	app := &App{
		Logger:  zerolog.Nop(),
		Uploads: upload.NewService(store, "http://localhost:8080", 5, 5*1024*1024),
	}
	return app, dir
}

func multipartBody(t *testing.T, names []string, data [][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, name := range names {
		part, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(data[i]); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadImagesSuccess(t *testing.T) {
	app, dir := newUploadApp(t)

	body, contentType := multipartBody(t,
		[]string{"one.jpg", "two.jpg"},
		[][]byte{jpegSample, jpegSample},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.UploadImages(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.ImageURLs) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(resp.ImageURLs))
	}
	for _, u := range resp.ImageURLs {
		if !strings.HasPrefix(u, "http://localhost:8080/uploads/") {
			t.Fatalf("unexpected url: %s", u)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read storage dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 stored files, got %d", len(entries))
	}
}

func TestUploadImagesEmptyBatch(t *testing.T) {
	app, dir := newUploadApp(t)

	body, contentType := multipartBody(t, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("no files may be stored, found %d", len(entries))
	}
}

func TestUploadImagesTooManyFiles(t *testing.T) {
	app, _ := newUploadApp(t)

	names := make([]string, 6)
	data := make([][]byte, 6)
	for i := range names {
		names[i] = "f.jpg"
		data[i] = jpegSample
	}
	body, contentType := multipartBody(t, names, data)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadImagesDisallowedType(t *testing.T) {
	app, dir := newUploadApp(t)

	body, contentType := multipartBody(t, []string{"anim.gif"}, [][]byte{gifSample})
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("rejected file must not be stored, found %d", len(entries))
	}
}

func TestUploadImagesNotMultipart(t *testing.T) {
	app, _ := newUploadApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/images", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.UploadImages(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
