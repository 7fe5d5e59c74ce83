package chatbot

import "time"

// DefaultHistoryCap bounds a session's conversation log. The desktop
// predecessor grew this list without limit; here the oldest entries are
// evicted once the cap is reached.
const DefaultHistoryCap = 50

type Entry struct {
	Time     time.Time
	Query    string
	Intent   Intent
	Response string
}

// History is an ordered, session-scoped conversation log. Not safe for
// concurrent use; a session serializes its requests.
type History struct {
	limit   int
	entries []Entry
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryCap
	}
	return &History{limit: limit}
}

func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}
