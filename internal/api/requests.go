// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/setlist/internal/models"
	"github.com/tomtom215/setlist/internal/validation"
)

// maxJSONBodyBytes caps JSON request bodies.
const maxJSONBodyBytes = 1 << 20

// songID accepts both "3" and 3 on the wire.
type songID string

func (id *songID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*id = ""
	case string:
		*id = songID(strings.TrimSpace(v))
	case float64:
		if v != float64(int64(v)) {
			return fmt.Errorf("song_id must be an integer, got %v", v)
		}
		*id = songID(strconv.FormatInt(int64(v), 10))
	default:
		return fmt.Errorf("song_id must be a string or number, got %T", raw)
	}
	return nil
}

// feedbackRequest is the body of POST /feedback.
type feedbackRequest struct {
	SongID          songID             `json:"song_id" validate:"required,songid"`
	Feedback        string             `json:"feedback" validate:"required,oneof=like dislike"`
	UserPreferences models.Preferences `json:"user_preferences"`
}

// recommendOptions holds the non-preference keys of a POST /recommend body.
type recommendOptions struct {
	TopN *int `json:"top_n"`
}

// recommendRequest is the validated form of POST /recommend.
type recommendRequest struct {
	Preferences models.Preferences
	TopN        int `json:"top_n" validate:"gte=0"`
}

// sourceRequest is the body of PUT /catalog/source.
type sourceRequest struct {
	Type string `json:"type" validate:"required,oneof=default user"`
}

// uploadRequest describes the multipart file of POST /catalog/upload.
type uploadRequest struct {
	Filename string `json:"filename" validate:"required,csvfile"`
	Size     int64  `json:"size" validate:"gt=0"`
}

// readBody reads a size-capped request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

// decodeJSON decodes a size-capped JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// decodeRecommend parses a POST /recommend body: preference keys at the top
// level plus an optional top_n. An empty body means no preferences.
func decodeRecommend(w http.ResponseWriter, r *http.Request) (recommendRequest, error) {
	var req recommendRequest
	body, err := readBody(w, r)
	if err != nil {
		return req, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, &req.Preferences); err != nil {
		return req, fmt.Errorf("invalid preferences: %w", err)
	}
	var opts recommendOptions
	if err := json.Unmarshal(body, &opts); err != nil {
		return req, fmt.Errorf("invalid top_n: %w", err)
	}
	if opts.TopN != nil {
		req.TopN = *opts.TopN
	}
	return req, nil
}

// queryInt reads a non-negative integer query parameter, returning def
// when it is absent and capping it at limit.
func queryInt(r *http.Request, name string, def, limit int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	if n == 0 {
		return def, nil
	}
	if limit > 0 && n > limit {
		n = limit
	}
	return n, nil
}

// validateRequest runs struct validation and writes the error response on
// failure. It returns false when the handler should stop.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}
