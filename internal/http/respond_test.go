package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Musyoka2020-eng/Contriflow/internal/workflow"
)

func TestHTMXResponseTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	err := newHTMXResponse().
		TriggerStateChanged(7).
		TriggerNotice(&workflow.Notice{Level: workflow.NoticeSuccess, Title: "Saved", Message: "done"}).
		Body([]byte("<div>ok</div>")).
		Send(rec)
	if err != nil {
		t.Fatal(err)
	}

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}

	var state struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(triggers["state:changed"], &state); err != nil {
		t.Fatal(err)
	}
	if state.Version != 7 {
		t.Fatalf("version = %d", state.Version)
	}

	var toast struct {
		Type     string `json:"type"`
		Title    string `json:"title"`
		Duration int    `json:"duration"`
	}
	if err := json.Unmarshal(triggers["show-notification"], &toast); err != nil {
		t.Fatal(err)
	}
	if toast.Type != "success" || toast.Title != "Saved" || toast.Duration != 3000 {
		t.Fatalf("toast = %+v", toast)
	}

	if rec.Body.String() != "<div>ok</div>" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestHTMXResponseWarningDuration(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = newHTMXResponse().
		TriggerNotice(&workflow.Notice{Level: workflow.NoticeWarning, Title: "Saved locally"}).
		Send(rec)

	var triggers map[string]struct {
		Duration int `json:"duration"`
	}
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatal(err)
	}
	if triggers["show-notification"].Duration != 5000 {
		t.Fatalf("duration = %d, want 5000", triggers["show-notification"].Duration)
	}
}

func TestHTMXResponseNilNotice(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = newHTMXResponse().TriggerNotice(nil).Status(http.StatusAccepted).Send(rec)
	if rec.Header().Get("HX-Trigger") != "" {
		t.Fatal("nil notice must not emit a trigger")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
}
