package amqp

import (
	"testing"
	"time"
)

func TestNewStateSyncMessage(t *testing.T) {
	msg := NewStateSyncMessage("org1", 7)

	if msg.OrgID != "org1" {
		t.Errorf("OrgID = %q, want org1", msg.OrgID)
	}
	if msg.Version != 7 {
		t.Errorf("Version = %d, want 7", msg.Version)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Minute {
		t.Error("Timestamp should be recent")
	}
}

func TestStateSyncMessage_JSONRoundTrip(t *testing.T) {
	msg := NewStateSyncMessage("org1", 3)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := StateSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if got.OrgID != msg.OrgID || got.Version != msg.Version {
		t.Errorf("round trip = %+v, want %+v", got, msg)
	}
}

func TestStateSyncMessageFromJSON_Invalid(t *testing.T) {
	if _, err := StateSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}
