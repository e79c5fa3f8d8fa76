package server

import (
	"github.com/circadianhq/circadian/internal/anchor"
	"github.com/circadianhq/circadian/pkg/circadian"
)

// AnchorView is one rendered anchor card: catalog fields plus the computed
// target time and classified status.
type AnchorView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Time        string        `json:"time"`
	Completed   bool          `json:"completed"`
	Status      anchor.Status `json:"status"`
}

type AnchorListResponse struct {
	Anchors []AnchorView `json:"anchors"`
}

type StateResponse struct {
	Name           string               `json:"name"`
	Chronotype     circadian.Chronotype `json:"chronotype"`
	WakeUpTime     string               `json:"wakeUpTime"`
	Bedtime        string               `json:"bedtime"`
	Streak         int                  `json:"streak"`
	LastActiveDate string               `json:"lastActiveDate,omitempty"`
	Score          anchor.SyncScore     `json:"score"`
	Anchors        []AnchorView         `json:"anchors"`
}

type ScheduleRequest struct {
	Name       string               `json:"name"`
	Chronotype circadian.Chronotype `json:"chronotype"`
	WakeUpTime string               `json:"wakeUpTime"`
	Bedtime    string               `json:"bedtime"`
}

type ToggleResponse struct {
	AnchorID  string           `json:"anchor_id"`
	Completed bool             `json:"completed"`
	Score     anchor.SyncScore `json:"score"`
}

type DayResponse struct {
	Streak         int    `json:"streak"`
	LastActiveDate string `json:"lastActiveDate"`
	RolledOver     bool   `json:"rolled_over"`
}

type StreakResponse struct {
	Streak         int    `json:"streak"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
}

type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}
