package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/customerr"
)

func respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// respondStoreError maps the model error taxonomy onto status codes:
// validation problems are the caller's fault, unknown ids are 404, anything
// else is a server failure.
func respondStoreError(w http.ResponseWriter, err error) {
	var verr *customerr.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Error())
		return
	}
	var nferr *customerr.NotFoundError
	if errors.As(err, &nferr) {
		respondError(w, http.StatusNotFound, nferr.Error())
		return
	}
	logger.Error("storage failure", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal error")
}

func parseDays(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
