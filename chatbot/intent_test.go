package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"attendance question", "What's my attendance?", IntentAttendance},
		{"attendance keyword", "how many classes did i miss", IntentAttendance},
		{"attendance rate", "my attendance percentage", IntentAttendance},
		{"class attendance routes to attendance", "Class attendance summary", IntentAttendance},
		{"marks", "Show my marks", IntentMarks},
		{"marks exam", "how did i do in exams", IntentMarks},
		{"marks performance", "my performance this term", IntentMarks},
		{"profile", "my profile information", IntentStudentInfo},
		{"contact details", "my contact details", IntentStudentInfo},
		{"subjects", "what subjects do i have", IntentSubjects},
		{"teachers", "list of teachers", IntentTeachers},
		{"who teaches", "who teaches physics", IntentTeachers},
		{"statistics", "show me system statistics", IntentStatistics},
		{"class doing", "how is my class doing", IntentStatistics},
		{"help", "help", IntentHelp},
		{"how to", "how do i change my password", IntentHelp},
		{"empty", "", IntentUnknown},
		{"whitespace", "   ", IntentUnknown},
		{"gibberish", "xyzzy plugh", IntentUnknown},
		{"case and padding normalized", "  MY ATTENDANCE  ", IntentAttendance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

// A query matching patterns of two intents resolves to whichever intent is
// declared earlier, deterministically.
func TestClassifyFirstMatchWins(t *testing.T) {
	// Matches both attendance ("attendance") and marks ("grades").
	assert.Equal(t, IntentAttendance, Classify("my attendance and my grades"))
	// Same tokens in the opposite order; declaration order still decides.
	assert.Equal(t, IntentAttendance, Classify("my grades and my attendance"))
	// Matches both marks ("result") and statistics ("report").
	assert.Equal(t, IntentMarks, Classify("result report"))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "attendance", IntentAttendance.String())
	assert.Equal(t, "student_info", IntentStudentInfo.String())
	assert.Equal(t, "unknown", IntentUnknown.String())
	assert.Equal(t, "unknown", Intent(99).String())
}
