package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio-backend/models"
)

const (
	maxBaseLen = 40
	maxExtLen  = 10
	// fallback when the client sends no usable image content type
	genericImageType = "image/*"
)

var randomLimit = big.NewInt(1_000_000_000)

// UploadName builds a per-upload file name: sanitized base, nanosecond
// timestamp, a random number below 1e9 and the sanitized extension.
func UploadName(original string, now time.Time) string {
	ext := sanitize(strings.TrimPrefix(filepath.Ext(original), "."), maxExtLen)
	base := sanitize(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)), maxBaseLen)
	if base == "" {
		base = "upload"
	}

	n, err := rand.Int(rand.Reader, randomLimit)
	if err != nil {
		panic("crypto/rand failed: " + err.Error())
	}

	name := fmt.Sprintf("%s-%d-%09d", base, now.UnixNano(), n.Int64())
	if ext != "" {
		name += "." + strings.ToLower(ext)
	}
	return name
}

func sanitize(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
		if b.Len() >= max {
			break
		}
	}
	return b.String()
}

// SaveUpload writes the multipart file into dir/collection under a fresh
// name and returns the path written. Existing files are never overwritten.
func SaveUpload(dir, collection string, fh *multipart.FileHeader) (string, error) {
	target := filepath.Join(dir, collection)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	for attempt := 0; attempt < 3; attempt++ {
		path := filepath.Join(target, UploadName(fh.Filename, time.Now()))
		dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			os.Remove(path)
			return "", err
		}
		return path, dst.Close()
	}
	return "", errors.New("could not allocate a unique upload name")
}

// LoadImage reads a stored upload back so it can be embedded in a document.
func LoadImage(path, contentType string) (*models.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &models.Image{Data: data, ContentType: ImageContentType(contentType)}, nil
}

// ImageContentType keeps a client supplied image/* type and falls back to
// the generic "image/*" otherwise.
func ImageContentType(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	if i := strings.IndexByte(header, ';'); i >= 0 {
		header = strings.TrimSpace(header[:i])
	}
	if strings.HasPrefix(header, "image/") {
		return header
	}
	return genericImageType
}
