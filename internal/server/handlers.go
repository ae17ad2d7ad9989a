package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/verte-zerg/pinkytype/internal/leaderboard"
	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
)

const maxBodyBytes = 4 << 10

type handler struct {
	gw       leaderboard.Gateway
	pinger   Pinger
	logger   *slog.Logger
	validate *validator.Validate
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "error"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) scores(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	entries, err := h.gw.Scores(r.Context(), category)
	if err != nil {
		h.logger.Error("fetching scores", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "could not fetch scores")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) personalBest(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	name := names.Normalize(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	wpm, ok, err := h.gw.PersonalBest(r.Context(), name, category)
	if err != nil {
		h.logger.Error("fetching personal best", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "could not fetch personal best")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no score yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"wpm": wpm})
}

func (h *handler) saveScore(w http.ResponseWriter, r *http.Request) {
	var sub model.ScoreSubmission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	sub.Name = names.Normalize(sub.Name)
	sub.Category = strings.TrimSpace(sub.Category)
	if err := h.validate.Struct(sub); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}
	if _, err := names.Validate(sub.Name); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.gw.Save(r.Context(), sub); err != nil {
		h.logger.Error("saving score", "category", sub.Category, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save score")
		return
	}
	h.logger.Info("score saved", "name", sub.Name, "category", sub.Category, "wpm", sub.WPM)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) nameTaken(w http.ResponseWriter, r *http.Request) {
	name := names.Normalize(chi.URLParam(r, "name"))
	taken, err := h.gw.IsNameTaken(r.Context(), name)
	if err != nil {
		h.logger.Error("checking name", "error", err)
		writeError(w, http.StatusInternalServerError, "could not verify name")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"taken": taken})
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid score"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return strings.Join(fields, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response already started; nothing else to report.
		_ = err
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
