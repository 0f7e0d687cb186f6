package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/examprom/examprom/internal/exam"
)

// POST /users/import stages a semicolon-delimited import file and returns
// the preview. Accepts multipart form-data (field "file") or a raw text
// body.
func ImportPreviewHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, err := importBlob(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		preview, err := svc.StageImport(r.Context(), blob)
		if err != nil {
			writeErr(w, err)
			return
		}
		status := http.StatusOK
		if !preview.OK() {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, preview)
	}
}

// POST /users/import/commit appends the previously previewed users.
func ImportCommitHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var preview exam.ImportPreview
		if err := json.NewDecoder(r.Body).Decode(&preview); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := svc.CommitImport(r.Context(), preview); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"imported": len(preview.Users)})
	}
}

func importBlob(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return "", errors.New("file required")
		}
		defer f.Close()
		return readAll(f)
	}
	defer r.Body.Close()
	return readAll(r.Body)
}

func readAll(f io.Reader) (string, error) {
	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
