package chatbot

import (
	"strings"
	"time"
)

// Bot answers one user's queries for the lifetime of a chat session.
// Callers must serialize Process calls; a session has at most one request
// in flight.
type Bot struct {
	store   Store
	userID  uint
	role    string
	name    string
	history *History

	// lastIntent is recorded on every recognized query but never consulted;
	// follow-up interpretation was sketched in the predecessor and never
	// built. Kept so the history surface stays complete.
	lastIntent Intent
	hasLast    bool
}

func New(store Store, userID uint, role, name string) *Bot {
	return &Bot{
		store:   store,
		userID:  userID,
		role:    role,
		name:    name,
		history: NewHistory(DefaultHistoryCap),
	}
}

// Process resolves free text to an intent, runs the matching report, and
// appends exactly one history entry. Report errors are converted to their
// fixed user-facing lines here and nowhere else; plain strings in, plain
// strings out.
func (b *Bot) Process(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	intent := Classify(normalized)

	var response string
	var err error
	switch intent {
	case IntentAttendance:
		response, err = b.attendanceReport(normalized)
	case IntentMarks:
		response, err = b.marksReport(normalized)
	case IntentStudentInfo:
		response, err = b.profileReport()
	case IntentSubjects:
		response, err = b.subjectsReport()
	case IntentTeachers:
		response, err = b.teachersReport()
	case IntentStatistics:
		response, err = b.statisticsReport()
	case IntentHelp:
		response = b.helpReport()
	case IntentUnknown:
		response = b.unknownReport()
	}
	if err != nil {
		response = userMessage(err)
	}

	if intent != IntentUnknown {
		b.lastIntent = intent
		b.hasLast = true
	}
	b.history.Append(Entry{
		Time:     time.Now(),
		Query:    query,
		Intent:   intent,
		Response: response,
	})
	return response
}

// History exposes the session's conversation log.
func (b *Bot) History() *History { return b.history }

// Role returns the role the bot was built for.
func (b *Bot) Role() string { return b.role }

// UserID returns the user the bot answers for.
func (b *Bot) UserID() uint { return b.userID }
