package chatbot

import (
	"regexp"
	"strings"
)

// Intent is the symbolic category of a user request. The set is closed;
// report dispatch switches exhaustively over it.
type Intent int

const (
	IntentAttendance Intent = iota
	IntentMarks
	IntentStudentInfo
	IntentSubjects
	IntentTeachers
	IntentStatistics
	IntentHelp
	IntentUnknown
)

func (i Intent) String() string {
	switch i {
	case IntentAttendance:
		return "attendance"
	case IntentMarks:
		return "marks"
	case IntentStudentInfo:
		return "student_info"
	case IntentSubjects:
		return "subjects"
	case IntentTeachers:
		return "teachers"
	case IntentStatistics:
		return "statistics"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// intentPatterns is declaration-ordered: Classify tests each intent's
// patterns in turn and returns on the first hit. No scoring, no ranking;
// first match wins so behavior stays predictable.
var intentPatterns = []struct {
	intent   Intent
	patterns []*regexp.Regexp
}{
	{IntentAttendance, compileAll(
		`attendance|present|absent|missing|attend`,
		`how many (days|classes) (did i|have i) (miss|attend)`,
		`my attendance|attendance rate|attendance percentage`,
	)},
	{IntentMarks, compileAll(
		`marks|grade|score|exam|test|result`,
		`how (did i do|am i doing) in`,
		`my (performance|results|grades)`,
	)},
	{IntentStudentInfo, compileAll(
		`my (profile|information|details)`,
		`student (profile|info|details)`,
		`contact|phone|email|address`,
	)},
	{IntentSubjects, compileAll(
		`subjects|classes|courses`,
		`what (subjects|classes) (do i have|am i taking)`,
		`my (subjects|classes|courses)`,
	)},
	{IntentTeachers, compileAll(
		`teachers|faculty|staff`,
		`who (teaches|is teaching)`,
		`teacher (for|of)`,
	)},
	{IntentStatistics, compileAll(
		`statistics|stats|report|summary`,
		`class (performance|attendance)`,
		`how is (the class|my class) doing`,
	)},
	{IntentHelp, compileAll(
		`help|what can you do|commands`,
		`how to|how do i`,
		`what (questions|queries) can i ask`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

// Classify maps free text to an intent. Input is lowercased and trimmed
// before matching; anything that matches no pattern is IntentUnknown.
func Classify(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, group := range intentPatterns {
		for _, re := range group.patterns {
			if re.MatchString(q) {
				return group.intent
			}
		}
	}
	return IntentUnknown
}
