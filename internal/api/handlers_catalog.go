// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/metrics"
)

// defaultMaxUploadBytes applies when catalog.max_upload_bytes is unset.
const defaultMaxUploadBytes = 10 << 20

// multipartMemory is the in-memory share of a parsed multipart form.
const multipartMemory = 1 << 20

// SourceResult is the body of the catalog source endpoints.
type SourceResult struct {
	Type      catalog.SourceType `json:"type"`
	HasUpload bool               `json:"has_upload"`
	Items     int                `json:"items,omitempty"`
}

// CatalogMeta handles GET /catalog/meta.
func (h *Handler) CatalogMeta(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	meta, err := h.service.Meta()
	if err != nil {
		respondServiceError(rw, r, err, "catalog_meta")
		return
	}
	rw.Success(meta)
}

// CatalogSource handles GET /catalog/source.
func (h *Handler) CatalogSource(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(SourceResult{
		Type:      h.selector.Current(),
		HasUpload: h.selector.HasUpload(),
		Items:     h.service.Status().Items,
	})
}

// SetCatalogSource handles PUT /catalog/source. The dataset for the new
// source is loaded first; the choice is persisted only once it has loaded,
// so a failed switch leaves both the catalog and the stored choice as they
// were.
func (h *Handler) SetCatalogSource(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req sourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}
	sourceType, err := catalog.ParseSourceType(req.Type)
	if err != nil {
		respondServiceError(rw, r, err, "catalog_source")
		return
	}

	if err := h.service.ReloadCatalog(r.Context(), h.selector.PathFor(sourceType)); err != nil {
		respondServiceError(rw, r, err, "catalog_source")
		return
	}
	if err := h.selector.Set(sourceType); err != nil {
		respondServiceError(rw, r, err, "catalog_source")
		return
	}

	logging.Ctx(r.Context()).Info().Str("source", string(sourceType)).Msg("Catalog source switched")
	rw.Success(SourceResult{
		Type:      sourceType,
		HasUpload: h.selector.HasUpload(),
		Items:     h.service.Status().Items,
	})
}

// UploadCatalog handles POST /catalog/upload with a multipart "file" field.
// The CSV is parsed before anything is stored: a dataset that does not load
// is rejected and the active catalog, stored upload and source choice are
// left untouched.
func (h *Handler) UploadCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	cat, err := h.receiveUpload(w, r, rw)
	metrics.RecordCatalogUpload(err)
	if err != nil {
		return
	}

	path, err := h.selector.SaveUpload(bytes.NewReader(cat.data))
	if err != nil {
		respondServiceError(rw, r, err, "catalog_upload")
		return
	}
	h.service.InstallCatalog(cat.catalog, path)
	if err := h.selector.Set(catalog.SourceUser); err != nil {
		respondServiceError(rw, r, err, "catalog_upload")
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("filename", cat.filename).
		Int("items", cat.catalog.Len()).
		Msg("Catalog uploaded")
	rw.Created(SourceResult{
		Type:      catalog.SourceUser,
		HasUpload: true,
		Items:     cat.catalog.Len(),
	})
}

type uploadedCatalog struct {
	filename string
	data     []byte
	catalog  *catalog.Catalog
}

// receiveUpload reads, validates and parses the uploaded file. On failure
// it has already written the error response.
func (h *Handler) receiveUpload(w http.ResponseWriter, r *http.Request, rw *ResponseWriter) (*uploadedCatalog, error) {
	limit := h.config.Catalog.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	// Multipart framing adds a little on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, fmt.Sprintf("Upload exceeds %d bytes", limit))
			return nil, err
		}
		rw.BadRequest("Expected a multipart/form-data body")
		return nil, err
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			rw.BadRequest("No file part")
		} else {
			rw.BadRequest("Could not read uploaded file")
		}
		return nil, err
	}
	defer file.Close()

	req := uploadRequest{Filename: filepath.Base(header.Filename), Size: header.Size}
	if !validateRequest(rw, &req) {
		return nil, errors.New("invalid upload")
	}
	if header.Size > limit {
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, fmt.Sprintf("Upload exceeds %d bytes", limit))
		return nil, errors.New("upload too large")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		rw.BadRequest("Could not read uploaded file")
		return nil, err
	}
	table, err := catalog.ReadCSV(bytes.NewReader(data))
	if err != nil {
		respondServiceError(rw, r, err, "catalog_upload")
		return nil, err
	}
	cat, err := catalog.Load(table)
	if err != nil {
		respondServiceError(rw, r, err, "catalog_upload")
		return nil, err
	}
	return &uploadedCatalog{filename: req.Filename, data: data, catalog: cat}, nil
}

// DownloadDemo handles GET /catalog/demo: the bundled CSV as an attachment.
func (h *Handler) DownloadDemo(w http.ResponseWriter, r *http.Request) {
	path := h.selector.DefaultPath()
	f, err := os.Open(path)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", path).Msg("Demo catalog unavailable")
		NewResponseWriter(w, r).NotFound("Demo catalog not available")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		NewResponseWriter(w, r).InternalError("Demo catalog not readable")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
}
