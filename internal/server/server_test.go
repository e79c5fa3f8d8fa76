package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/circadianhq/circadian/internal/config"
	"github.com/circadianhq/circadian/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{ListenAddr: ":0"}
}

func newTestServer(st storage.Store, now time.Time) http.Handler {
	s := New(st, testConfig()).WithClock(func() time.Time { return now })
	return s.Router()
}

func mockRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func record(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func clockAt(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t.Fatalf("bad clock %q: %v", s, err)
	}
	return ts
}

func TestGetState_FreshUser(t *testing.T) {
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 08:00"))

	rr := mockRequest(h, http.MethodGet, "/state", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}

	var resp StateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.WakeUpTime != "07:00" || resp.Bedtime != "23:00" {
		t.Fatalf("default schedule mismatch: %+v", resp)
	}
	if len(resp.Anchors) != 7 {
		t.Fatalf("got %d anchors, want 7", len(resp.Anchors))
	}
	if resp.Score.Percent != 0 {
		t.Fatalf("fresh score=%d, want 0", resp.Score.Percent)
	}
}

func TestListAnchors_ComputedTimes(t *testing.T) {
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 08:00"))

	rr := mockRequest(h, http.MethodGet, "/anchors", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}

	var resp AnchorListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	want := map[string]string{
		"morning-light":     "07:00",
		"hydration":         "07:10",
		"first-meal":        "08:00",
		"daylight-exposure": "12:00",
		"movement":          "15:00",
		"digital-sunset":    "22:00",
		"last-meal":         "20:00",
	}
	for _, a := range resp.Anchors {
		if a.Time != want[a.ID] {
			t.Errorf("%s: time=%s, want %s", a.ID, a.Time, want[a.ID])
		}
	}
}

func TestPutSchedule_RecomputesTimes(t *testing.T) {
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 08:00"))

	rr := mockRequest(h, http.MethodPut, "/schedule", ScheduleRequest{
		Name:       "Ada",
		Chronotype: "lark",
		WakeUpTime: "06:00",
		Bedtime:    "22:00",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}

	var views []AnchorView
	if err := json.Unmarshal(rr.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	byID := map[string]AnchorView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	if byID["first-meal"].Time != "07:00" {
		t.Errorf("first-meal=%s, want 07:00", byID["first-meal"].Time)
	}
	if byID["digital-sunset"].Time != "21:00" {
		t.Errorf("digital-sunset=%s, want 21:00", byID["digital-sunset"].Time)
	}
}

func TestPutSchedule_Invalid(t *testing.T) {
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 08:00"))

	cases := []ScheduleRequest{
		{Name: "", Chronotype: "dove", WakeUpTime: "07:00", Bedtime: "23:00"},
		{Name: "Ada", Chronotype: "sparrow", WakeUpTime: "07:00", Bedtime: "23:00"},
		{Name: "Ada", Chronotype: "dove", WakeUpTime: "25:00", Bedtime: "23:00"},
		{Name: "Ada", Chronotype: "dove", WakeUpTime: "07:00", Bedtime: "half nine"},
	}
	for i, req := range cases {
		rr := mockRequest(h, http.MethodPut, "/schedule", req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("case %d: got %d want 400", i, rr.Code)
		}
	}
}

func TestToggleAnchor_UpdatesScore(t *testing.T) {
	st := newMemStore()
	h := newTestServer(st, clockAt(t, "2025-03-10 08:00"))

	rr := mockRequest(h, http.MethodPost, "/anchors/morning-light/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}

	var resp ToggleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !resp.Completed {
		t.Fatal("expected anchor to be completed after toggle")
	}
	if resp.Score.Percent != 14 {
		t.Fatalf("score=%d, want 14 (1/7)", resp.Score.Percent)
	}

	// Toggling back clears the flag.
	rr = mockRequest(h, http.MethodPost, "/anchors/morning-light/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.Completed || resp.Score.Percent != 0 {
		t.Fatalf("after second toggle: %+v, want uncompleted/0", resp)
	}
}

func TestToggleAnchor_Unknown(t *testing.T) {
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 08:00"))

	rr := mockRequest(h, http.MethodPost, "/anchors/nonexistent/toggle", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rr.Code)
	}
}

func TestAnchorStatuses_Classified(t *testing.T) {
	// At 09:55 with the default schedule: morning-light (07:00) and
	// hydration (07:10) are past the two-hour window, first-meal (08:00)
	// is inside it, the rest are not yet due.
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 09:55"))

	rr := mockRequest(h, http.MethodGet, "/anchors", nil)
	var resp AnchorListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	want := map[string]string{
		"morning-light":     "missed",
		"hydration":         "missed",
		"first-meal":        "pending",
		"daylight-exposure": "pending",
		"movement":          "pending",
		"digital-sunset":    "pending",
		"last-meal":         "pending",
	}
	for _, a := range resp.Anchors {
		if string(a.Status) != want[a.ID] {
			t.Errorf("%s: status=%s, want %s", a.ID, a.Status, want[a.ID])
		}
	}
}

func TestVersionEndpoint(t *testing.T) {
	h := newTestServer(newMemStore(), clockAt(t, "2025-03-10 08:00"))

	rr := mockRequest(h, http.MethodGet, "/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp["version"] == "" {
		t.Fatal("expected version in response")
	}
}
