package rest

import (
	"bytes"
	"encoding/json"
	"sync"

	"taskboard/internal/service"
)

// wireID is a task id as the service sent it. Key is the string form used
// by the rest of the program; Raw is the JSON token, written back verbatim
// so a numeric id stays numeric.
type wireID struct {
	Key string
	Raw json.RawMessage
}

func (id *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = wireID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID{Key: s, Raw: bytes.Clone(data)}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID{Key: n.String(), Raw: bytes.Clone(data)}
	return nil
}

func (id wireID) MarshalJSON() ([]byte, error) {
	if len(id.Raw) > 0 {
		return id.Raw, nil
	}
	return json.Marshal(id.Key)
}

// ids remembers the raw token of every id the service has returned.
type ids struct {
	mu  sync.Mutex
	raw map[string]json.RawMessage
}

func (r *ids) remember(id wireID) {
	if id.Key == "" || len(id.Raw) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raw == nil {
		r.raw = make(map[string]json.RawMessage)
	}
	r.raw[id.Key] = id.Raw
}

func (r *ids) forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.raw, key)
}

// lookup returns the id for key in the form the service gave it. Unknown
// keys are sent as strings.
func (r *ids) lookup(key string) wireID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return wireID{Key: key, Raw: r.raw[key]}
}

// wireDraft is the POST body: the six mutable fields, absent dates as null.
type wireDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	CreatedDate *string `json:"createdDate"`
	DueDate     *string `json:"dueDate"`
}

// wireTask is the full record as sent on PUT and received on every read.
type wireTask struct {
	ID wireID `json:"id"`
	wireDraft
}

func newWireDraft(t service.Task) wireDraft {
	return wireDraft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedDate: optional(t.CreatedDate),
		DueDate:     optional(t.DueDate),
	}
}

func newWireTask(id wireID, t service.Task) wireTask {
	return wireTask{ID: id, wireDraft: newWireDraft(t)}
}

func (w wireTask) task() service.Task {
	return service.Task{
		ID:          w.ID.Key,
		Title:       w.Title,
		Description: w.Description,
		Priority:    w.Priority,
		Status:      w.Status,
		CreatedDate: deref(w.CreatedDate),
		DueDate:     deref(w.DueDate),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
