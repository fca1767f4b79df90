package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
)

func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.stats.Seasons(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	if seasons == nil {
		seasons = []int{}
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"seasons": seasons})
}

func (h *Handler) GetWeekOptimization(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"), false)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "invalid week")
		return
	}

	results, err := h.stats.WeekOptimization(r.Context(), season, week, strings.TrimSpace(r.URL.Query().Get("team")))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, results)
}

func (h *Handler) GetSeasonEfficiency(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"), false)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.stats.SeasonEfficiency(r.Context(), season)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, results)
}

func (h *Handler) GetAllPro(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"), true)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	selection, err := h.stats.AllPro(r.Context(), season)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, selection)
}

func (h *Handler) GetNotableGames(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"), true)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	games, err := h.stats.NotableGames(r.Context(), season)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, games)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"), true)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.stats.Standings(r.Context(), season)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, rows)
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	team := strings.TrimSpace(r.URL.Query().Get("team"))
	opponent := strings.TrimSpace(r.URL.Query().Get("opponent"))
	if team == "" || opponent == "" {
		h.errorResponse(w, http.StatusBadRequest, "team and opponent are required")
		return
	}

	summary, err := h.stats.HeadToHead(r.Context(), team, opponent)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

func (h *Handler) GetRivalries(w http.ResponseWriter, r *http.Request) {
	team := strings.TrimSpace(chi.URLParam(r, "team"))
	if team == "" {
		h.errorResponse(w, http.StatusBadRequest, "team is required")
		return
	}

	rivalries, err := h.stats.Rivalries(r.Context(), team)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, rivalries)
}

func (h *Handler) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	season, err := parseOptionalInt(query.Get("season"), "season")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	week, err := parseOptionalInt(query.Get("week"), "week")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	games, err := h.stats.SearchGames(r.Context(), aggregate.GameQuery{
		Season:          season,
		Week:            week,
		Team:            strings.TrimSpace(query.Get("team")),
		Period:          strings.TrimSpace(query.Get("period")),
		IncludeUnplayed: query.Get("unplayed") == "true",
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, games)
}

func (h *Handler) FindPlayers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		h.errorResponse(w, http.StatusBadRequest, "q is required")
		return
	}
	season, err := parseOptionalInt(r.URL.Query().Get("season"), "season")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	players, err := h.stats.FindPlayers(r.Context(), q, season)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, players)
}
