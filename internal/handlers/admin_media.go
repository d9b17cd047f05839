// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder

	"gogevgelija/internal/imaging"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
)

const (
	// maxUploadSize is the maximum allowed upload size (20 MB).
	maxUploadSize = 20 << 20
)

// allowedImageTypes defines MIME types accepted for upload. The app
// serves photos only; documents go elsewhere.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaList returns uploaded images newest first with their public URLs.
func (a *Admin) MediaList(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	limit, offset := pagination(r)
	items, total, err := a.media.List(limit, offset)
	if err != nil {
		slog.Error("list media failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	type mediaView struct {
		models.Media
		URL      string `json:"url"`
		ThumbURL string `json:"thumb_url,omitempty"`
	}
	views := make([]mediaView, 0, len(items))
	for _, m := range items {
		mv := mediaView{Media: m, URL: a.storage.FileURL(m.S3Key)}
		if m.ThumbS3Key != nil {
			mv.ThumbURL = a.storage.FileURL(*m.ThumbS3Key)
		}
		views = append(views, mv)
	}
	writeJSON(w, http.StatusOK, paged(r, views, total))
}

// MediaUpload accepts a multipart image, generates responsive JPEG
// variants, uploads everything to the bucket, and records the metadata.
// The response maps variant names to public URLs.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	claims := middleware.ClaimsFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 20 MB")
		return
	}

	// Sniff the real content type; client-supplied headers lie.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	if !allowedImageTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	variants, err := imaging.GenerateVariants(fileBytes, imaging.DefaultVariants)
	if err != nil {
		slog.Warn("image processing failed", "error", err, "filename", header.Filename)
		writeError(w, http.StatusBadRequest, "could not decode image")
		return
	}

	now := time.Now()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	keyPrefix := fmt.Sprintf("media/%d/%02d/%s", now.Year(), now.Month(), fileID)
	originalKey := keyPrefix + ext

	ctx := r.Context()
	if err := a.storage.Upload(ctx, originalKey, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", originalKey)
		writeError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	// Upload each variant; a failed variant is logged and skipped so the
	// original stays usable.
	urls := map[string]string{"original": a.storage.FileURL(originalKey)}
	var thumbKey *string
	for _, v := range variants {
		key := fmt.Sprintf("%s_%s.jpg", keyPrefix, v.Name)
		if err := a.storage.Upload(ctx, key, v.ContentType, bytes.NewReader(v.Data), int64(len(v.Data))); err != nil {
			slog.Warn("variant upload failed", "error", err, "key", key)
			continue
		}
		urls[v.Name] = a.storage.FileURL(key)
		if v.Name == "thumb" {
			k := key
			thumbKey = &k
		}
	}

	created, err := a.media.Create(&models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		Bucket:       a.storage.Bucket(),
		S3Key:        originalKey,
		ThumbS3Key:   thumbKey,
		UploaderID:   claims.UserID,
	})
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", originalKey)
		writeError(w, http.StatusInternalServerError, "failed to save file metadata")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       created.ID,
		"urls":     urls,
		"filename": created.OriginalName,
		"size":     created.SizeBytes,
		"type":     created.ContentType,
	})
}

// MediaDelete removes an upload from the bucket and the database. Bucket
// cleanup is best-effort; a missing object never blocks the delete.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, ok := urlID(w, r)
	if !ok {
		return
	}
	m, err := a.media.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	ctx := r.Context()
	if err := a.storage.Delete(ctx, m.S3Key); err != nil {
		slog.Warn("s3 original delete failed", "error", err, "key", m.S3Key)
	}
	// Variant keys share the original's prefix.
	base := strings.TrimSuffix(m.S3Key, filepath.Ext(m.S3Key))
	for _, v := range imaging.DefaultVariants {
		key := fmt.Sprintf("%s_%s.jpg", base, v.Name)
		if err := a.storage.Delete(ctx, key); err != nil {
			slog.Warn("s3 variant delete failed", "error", err, "key", key)
		}
	}

	if err := a.media.Delete(id); err != nil {
		slog.Error("media db delete failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// extensionFromType returns a file extension for the accepted MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
