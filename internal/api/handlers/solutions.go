package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"distribution-planner/internal/api/dto"
	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/obs"
	"distribution-planner/internal/ports"
	"distribution-planner/internal/services"
)

type SolutionHandler struct {
	Planner *services.Planner
	Repo    ports.SolutionRepository
}

// Create solves the posted dataset and returns the stored solution.
func (h *SolutionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, errMultipleObjects) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	var mode services.MergeMode
	if strings.TrimSpace(req.MergeMode) != "" {
		m, err := services.ParseMergeMode(req.MergeMode)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}

	ds, err := req.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sol, err := h.Planner.Plan(r.Context(), ds, mode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDataset) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("req_id=%s plan failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromSolution(sol))
}

// List returns the most recent solution headers, newest first.
func (h *SolutionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	headers, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		log.Printf("req_id=%s list solutions failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListSolutionsResponse{Solutions: make([]dto.SolutionHeaderResponse, 0, len(headers))}
	for _, hd := range headers {
		res.Solutions = append(res.Solutions, dto.FromHeader(hd))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *SolutionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}

	sol, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "solution not found")
		return
	}
	if err != nil {
		log.Printf("req_id=%s get solution %s failed: %v", obs.RequestID(r.Context()), id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSolution(sol))
}
