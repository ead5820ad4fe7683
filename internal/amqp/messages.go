package amqp

import (
	"encoding/json"
	"time"
)

// StateSyncMessage announces that an organization document reached a new
// stored version. It carries only identifiers; the worker loads the full
// document from the store.
type StateSyncMessage struct {
	OrgID     string    `json:"org_id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewStateSyncMessage(orgID string, version int64) *StateSyncMessage {
	return &StateSyncMessage{
		OrgID:     orgID,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *StateSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StateSyncMessageFromJSON(data []byte) (*StateSyncMessage, error) {
	var msg StateSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
