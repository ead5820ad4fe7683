// This file builds HTMX responses: HX-Trigger headers for client-side
// events (toast notifications, state refreshes) plus the fragment body.

package http

import (
	"encoding/json"
	"net/http"

	"github.com/Musyoka2020-eng/Contriflow/internal/workflow"
)

// htmxResponse accumulates triggers and body for one HTMX reply.
type htmxResponse struct {
	triggers   map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

func newHTMXResponse() *htmxResponse {
	return &htmxResponse{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *htmxResponse) Status(code int) *htmxResponse {
	b.statusCode = code
	return b
}

func (b *htmxResponse) Trigger(name string, data any) *htmxResponse {
	b.triggers[name] = data
	return b
}

// TriggerStateChanged tells the client the dataset moved to a new stored
// version, so dependent fragments re-fetch themselves.
func (b *htmxResponse) TriggerStateChanged(version int64) *htmxResponse {
	return b.Trigger("state:changed", map[string]int64{"version": version})
}

// TriggerNotice maps a workflow notice onto the client toast event. A nil
// notice adds nothing.
func (b *htmxResponse) TriggerNotice(n *workflow.Notice) *htmxResponse {
	if n == nil {
		return b
	}
	duration := 3000
	if n.Level == workflow.NoticeWarning || n.Level == workflow.NoticeError {
		duration = 5000
	}
	return b.Trigger("show-notification", map[string]any{
		"type":     string(n.Level),
		"title":    n.Title,
		"message":  n.Message,
		"duration": duration,
	})
}

func (b *htmxResponse) Header(name, value string) *htmxResponse {
	b.headers[name] = value
	return b
}

func (b *htmxResponse) Body(content []byte) *htmxResponse {
	b.body = content
	return b
}

// Send writes headers, the HX-Trigger header, status, and body.
func (b *htmxResponse) Send(w http.ResponseWriter) error {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if len(b.triggers) > 0 {
		payload, err := json.Marshal(b.triggers)
		if err != nil {
			return err
		}
		w.Header().Set("HX-Trigger", string(payload))
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, err := w.Write(b.body)
		return err
	}
	return nil
}
