package examgen

import (
	"fmt"
	"strconv"
	"strings"
)

// choiceMarkers are the circled numbers a five-option multiple-choice
// question uses, in order.
var choiceMarkers = []string{"①", "②", "③", "④", "⑤"}

// CheckQuestion validates a freshly parsed question before it is accepted.
// The checks are structural: answer-group shape, choice count and markers,
// and point values. Points missing or non-numeric are repaired in place from
// the difficulty default; everything else fails the question, which makes the
// maker substitute its fallback.
func CheckQuestion(q *Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("empty question text")
	}

	if err := q.Validate(); err != nil {
		return err
	}

	if q.QuestionType == TypeMultipleChoice {
		if len(q.Choices) != len(choiceMarkers) {
			return fmt.Errorf("expected %d choices, got %d", len(choiceMarkers), len(q.Choices))
		}
		if !containsChoiceMarker(q.CorrectAnswer) {
			return fmt.Errorf("correct answer %q does not name a choice marker", q.CorrectAnswer)
		}
	}

	if _, err := strconv.Atoi(strings.TrimSpace(q.Points)); err != nil {
		q.Points = PointsForDifficulty(q.Difficulty)
	}
	return nil
}

// containsChoiceMarker reports whether s references one of the circled
// numbers, either directly ("③") or as a plain numeral ("3").
func containsChoiceMarker(s string) bool {
	for i, marker := range choiceMarkers {
		if strings.Contains(s, marker) || strings.TrimSpace(s) == strconv.Itoa(i+1) {
			return true
		}
	}
	return false
}
