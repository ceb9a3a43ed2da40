package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
)

const multipartMemory = 32 << 20

// parseMultipart bounds the body and parses the form. Callers must invoke the
// returned cleanup once the request is handled.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) (func(), error) {
	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return func() {}, err
	}
	return func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}, nil
}

// formString returns the field value, or nil when the field was not sent at
// all. Partial updates depend on that distinction.
func formString(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// formSlice returns all values of a repeated field and whether it was sent.
// Empty strings are dropped so "clear everything" can be expressed with a
// single empty value.
func formSlice(r *http.Request, name string) ([]string, bool) {
	if r.MultipartForm == nil {
		return nil, false
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out, true
}

func formTime(r *http.Request, name string) (*time.Time, error) {
	raw := formString(r, name)
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", value)
}

func formBool(r *http.Request, name string) (*bool, error) {
	raw := formString(r, name)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", *raw)
	}
	return &parsed, nil
}

func formInt(r *http.Request, name string) (*int, error) {
	raw := formString(r, name)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", *raw)
	}
	return &parsed, nil
}

// formUploads opens every file sent under the field name, preserving order.
// The returned closer must run after the uploads have been consumed.
func formUploads(r *http.Request, name string) ([]app.Upload, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}
	headers := r.MultipartForm.File[name]
	uploads := make([]app.Upload, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open upload %q: %w", header.Filename, err)
		}
		closers = append(closers, file)
		uploads = append(uploads, app.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		})
	}
	return uploads, closeAll, nil
}

// formUpload returns at most one file for single-file resources.
func formUpload(r *http.Request, name string) (*app.Upload, func(), error) {
	uploads, closeAll, err := formUploads(r, name)
	if err != nil {
		return nil, closeAll, err
	}
	if len(uploads) == 0 {
		return nil, closeAll, nil
	}
	return &uploads[0], closeAll, nil
}
