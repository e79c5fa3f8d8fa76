package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/circadianhq/circadian/internal/anchor"
	"github.com/circadianhq/circadian/internal/logger"
	"github.com/circadianhq/circadian/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	logger.Debug("Getting state", "user_id", userID)
	if userID == "" {
		http.Error(w, `{"error":"user id is required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	resp := StateResponse{
		Name:           st.Name,
		Chronotype:     st.Chronotype,
		WakeUpTime:     st.WakeUpTime,
		Bedtime:        st.Bedtime,
		Streak:         st.Streak,
		LastActiveDate: st.LastActiveDate,
		Score:          anchor.Score(st.Anchors),
		Anchors:        anchorViews(st, s.now()),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize state response", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) putSchedule(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	logger.Debug("Updating schedule", "user_id", userID)
	if userID == "" {
		http.Error(w, `{"error":"user id is required"}`, http.StatusBadRequest)
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in schedule request", "error", err)
		http.Error(w, `{"error":"invalid JSON"}`, http.StatusBadRequest)
		return
	}
	if err := validateSchedule(req); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":"%s"}`, err.Error()), http.StatusBadRequest)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	st.Name = req.Name
	st.Chronotype = req.Chronotype
	st.WakeUpTime = req.WakeUpTime
	st.Bedtime = req.Bedtime

	if err := s.store.SaveState(userID, st); err != nil {
		logger.Error("Failed to save state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	logger.Info("Schedule updated", "user_id", userID, "wake", st.WakeUpTime, "bed", st.Bedtime)

	if err := writeJSON(w, http.StatusOK, anchorViews(st, s.now())); err != nil {
		logger.Error("Failed to serialize schedule response", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) listAnchors(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	logger.Debug("Listing anchors", "user_id", userID)
	if userID == "" {
		http.Error(w, `{"error":"user id is required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	resp := AnchorListResponse{Anchors: anchorViews(st, s.now())}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize anchor list response", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) toggleAnchor(w http.ResponseWriter, r *http.Request) {
	anchorID := chi.URLParam(r, "anchor_id")
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	logger.Debug("Toggling anchor", "user_id", userID, "anchor_id", anchorID)
	if userID == "" || anchorID == "" {
		http.Error(w, `{"error":"user id and anchor id are required"}`, http.StatusBadRequest)
		return
	}
	if _, ok := anchor.Lookup(anchorID); !ok {
		http.Error(w, `{"error":"anchor not found"}`, http.StatusNotFound)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	var completed bool
	for i := range st.Anchors {
		if st.Anchors[i].ID == anchorID {
			st.Anchors[i].Completed = !st.Anchors[i].Completed
			completed = st.Anchors[i].Completed
		}
	}
	score := anchor.Score(st.Anchors)
	st.SyncScore = score.Percent

	if err := s.store.SaveState(userID, st); err != nil {
		logger.Error("Failed to save state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	logger.Info("Anchor toggled", "user_id", userID, "anchor_id", anchorID, "completed", completed)

	updateStateMetrics(userID, st)

	resp := ToggleResponse{AnchorID: anchorID, Completed: completed, Score: score}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize toggle response", "user_id", userID, "anchor_id", anchorID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) activateDay(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	logger.Debug("Applying daily activation", "user_id", userID)
	if userID == "" {
		http.Error(w, `{"error":"user id is required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	rolledOver := applyDay(st, s.now())

	if err := s.store.SaveState(userID, st); err != nil {
		logger.Error("Failed to save state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"database write failed"}`, http.StatusInternalServerError)
		return
	}
	logger.Info("Daily activation applied", "user_id", userID, "streak", st.Streak, "rolled_over", rolledOver)

	updateStateMetrics(userID, st)

	resp := DayResponse{Streak: st.Streak, LastActiveDate: st.LastActiveDate, RolledOver: rolledOver}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize day response", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getScore(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	if userID == "" {
		http.Error(w, `{"error":"user id is required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, anchor.Score(st.Anchors)); err != nil {
		logger.Error("Failed to serialize score response", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) getStreak(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(s.cfg.AuthEnabled, r)
	if userID == "" {
		http.Error(w, `{"error":"user id is required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.loadOrInit(userID)
	if err != nil {
		logger.Error("Failed to load state", "user_id", userID, "error", err)
		http.Error(w, `{"error":"storage error"}`, http.StatusInternalServerError)
		return
	}

	resp := StreakResponse{Streak: st.Streak, LastActiveDate: st.LastActiveDate}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize streak response", "user_id", userID, "error", err)
		http.Error(w, `{"error":"failed to serialize response"}`, http.StatusInternalServerError)
		return
	}
}

func validateSchedule(req ScheduleRequest) error {
	const maxNameLength = 40

	if len(req.Name) == 0 || len(req.Name) > maxNameLength {
		return fmt.Errorf("bad name: must be 1-%d characters", maxNameLength)
	}
	if !req.Chronotype.Valid() {
		return fmt.Errorf("bad chronotype: must be lark, dove or owl")
	}
	if _, err := anchor.ParseTimeOfDay(req.WakeUpTime); err != nil {
		return fmt.Errorf("bad wake-up time: must be HH:MM")
	}
	if _, err := anchor.ParseTimeOfDay(req.Bedtime); err != nil {
		return fmt.Errorf("bad bedtime: must be HH:MM")
	}
	return nil
}
