package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/examprom/examprom/internal/exam"
	"github.com/examprom/examprom/internal/export"
)

// GET /results?exam=<id>&group=<id> — both filters optional.
func ListResultsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := queryID(r, "exam")
		groupID := queryID(r, "group")
		writeJSON(w, http.StatusOK, svc.FilteredResults(r.Context(), examID, groupID))
	}
}

// GET /results/export — same filters, CSV attachment. An empty filtered
// set is a 409 with a nothing-to-export notice; no file is produced.
func ExportResultsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := queryID(r, "exam")
		groupID := queryID(r, "group")
		filtered := svc.FilteredResults(r.Context(), examID, groupID)
		raw, err := export.Results(svc.Snapshot(), filtered)
		if err != nil {
			if errors.Is(err, export.ErrNothingToExport) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="resultados_examenes.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

func queryID(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" || v == "all" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
