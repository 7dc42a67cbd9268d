package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

// Store abstracts the durable file store backing uploads.
type Store interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// File is one uploaded image, fully read into memory.
type File struct {
	Name string
	Data []byte
}

// extByType doubles as the content-type allow-list. Types are sniffed from
// the file bytes, not taken from the client-declared header.
var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Service validates and stores uploaded photos, handing back one public
// URL per stored file in input order.
type Service struct {
	store    Store
	baseURL  string
	maxFiles int
	maxBytes int64
}

func NewService(store Store, publicBaseURL string, maxFiles int, maxBytes int64) *Service {
	return &Service{
		store:    store,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxFiles: maxFiles,
		maxBytes: maxBytes,
	}
}

// Accept validates the whole batch before the first byte is stored, so a
// rejected batch leaves nothing behind. On success every file is written
// under a unique key and its public URL returned.
func (s *Service) Accept(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no images uploaded", domain.ErrValidation)
	}
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: at most %d images per upload", domain.ErrValidation, s.maxFiles)
	}
	exts := make([]string, len(files))
	for i, f := range files {
		if int64(len(f.Data)) > s.maxBytes {
			return nil, fmt.Errorf("%w: %s exceeds the %d byte limit", domain.ErrValidation, f.Name, s.maxBytes)
		}
		ext, ok := extByType[sniffType(f.Data)]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a jpeg, png or webp image", domain.ErrValidation, f.Name)
		}
		exts[i] = ext
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		key, err := s.store.Write(ctx, uniqueKey(exts[i]), f.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: store upload: %v", domain.ErrStorage, err)
		}
		urls = append(urls, s.baseURL+"/uploads/"+key)
	}
	return urls, nil
}

func sniffType(data []byte) string {
	sniffed := http.DetectContentType(data)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	return strings.TrimSpace(sniffed)
}

// uniqueKey builds a timestamp-plus-random-suffix name. Collisions are
// astronomically unlikely but not impossible; the store treats this as a
// best-effort guarantee.
func uniqueKey(ext string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), hex.EncodeToString(suffix), ext)
}
