package handlers

import (
	"errors"
	"log"
	"net/http"

	"distribution-planner/internal/api/dto"
	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/obs"
	"distribution-planner/internal/services"
)

type MatrixHandler struct {
	Planner *services.Planner
}

// Matrix returns the rounded great-circle distance matrix of the posted dataset.
func (h *MatrixHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	var req dto.DatasetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	ds, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.Planner.DistanceMatrix(r.Context(), ds)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDataset) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("req_id=%s distance matrix failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromMatrix(m))
}
