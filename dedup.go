package examgen

import "strings"

// QuestionDedup tracks question texts seen during one generation run and
// flags repeats. Duplicates are not regenerated (the pipeline has no retry
// policy); they are counted for the statistics report and the transcript log.
type QuestionDedup struct {
	seen map[string]string // normalized text -> question ID
}

// NewQuestionDedup creates an empty duplicate tracker.
func NewQuestionDedup() *QuestionDedup {
	return &QuestionDedup{seen: make(map[string]string)}
}

// Observe records a question and reports whether an earlier question in this
// run had the same normalized text, along with that question's ID.
func (qd *QuestionDedup) Observe(q *Question) (duplicate bool, of string) {
	key := normalizeText(q.Question)
	if key == "" {
		return false, ""
	}
	if id, ok := qd.seen[key]; ok {
		return true, id
	}
	qd.seen[key] = q.QuestionID
	return false, ""
}

// Count returns how many distinct question texts have been observed.
func (qd *QuestionDedup) Count() int {
	return len(qd.seen)
}

// normalizeText lowercases and strips whitespace and common punctuation so
// trivially reworded repeats still collide.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '.', ',', '?', '!', ':', ';', '"', '\'':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
