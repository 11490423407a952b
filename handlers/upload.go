package handlers

import (
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"portfolio-backend/logger"
	"portfolio-backend/models"
	"portfolio-backend/utils"
)

const imageField = "image"

// ImageMirror receives a copy of every stored upload.
type ImageMirror interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// Uploader stores multipart images on disk and turns them into embedded images.
type Uploader struct {
	Dir      string
	MaxBytes int64
	Mirror   ImageMirror
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// parseForm parses a multipart body and returns the optional image part.
func (u *Uploader) parseForm(w http.ResponseWriter, r *http.Request) (*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, u.MaxBytes)
	if err := r.ParseMultipartForm(u.MaxBytes); err != nil {
		return nil, err
	}

	_, fh, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fh, nil
}

// embed saves fh under the collection directory, reads it back and mirrors it.
func (u *Uploader) embed(ctx context.Context, collection string, fh *multipart.FileHeader) (*models.Image, error) {
	if fh == nil {
		return nil, nil
	}

	path, err := utils.SaveUpload(u.Dir, collection, fh)
	if err != nil {
		return nil, err
	}
	logger.Debugf("upload stored at %s", path)

	img, err := utils.LoadImage(path, fh.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	if u.Mirror != nil {
		key := collection + "/" + filepath.Base(path)
		if url, err := u.Mirror.Upload(ctx, img.Data, key, img.ContentType); err != nil {
			logger.Warningf("mirror upload of %s failed: %v", key, err)
		} else {
			logger.Infof("mirrored %s to %s", key, url)
		}
	}
	return img, nil
}
