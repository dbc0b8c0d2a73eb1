package records

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"Billios/internal/auth"
	"Billios/internal/calc/fieldtest"
	"Billios/internal/repo"
	"github.com/gorilla/mux"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type Handler struct {
	Repo        repo.FieldTestStore
	Calibration fieldtest.Calibration
	Log         *slog.Logger
}

type SaveRequest struct {
	Project string          `json:"project"`
	Input   fieldtest.Input `json:"input"`
}

type SaveResponse struct {
	ID     int              `json:"id"`
	Result fieldtest.Result `json:"result"`
}

// Save calculates the field test and stores it for the current user.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	input := h.Calibration.Apply(req.Input)
	res, err := fieldtest.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Repo.SaveFieldTest(r.Context(), userID, req.Project, input, res)
	if err != nil {
		h.Log.Error("save field test", "user_id", userID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	h.Log.Info("field test saved", "user_id", userID, "id", id, "compaction", res.Compaction)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SaveResponse{ID: id, Result: res})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLimit)
	}

	records, err := h.Repo.ListFieldTests(r.Context(), userID, limit)
	if err != nil {
		h.Log.Error("list field tests", "user_id", userID, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.Repo.GetFieldTest(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "Field test not found", http.StatusNotFound)
			return
		}
		h.Log.Error("get field test", "user_id", userID, "id", id, "error", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}
