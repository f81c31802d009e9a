package examgen

import (
	"math/rand"
	"strings"
)

// Slot is one planned question: its format, subject area and difficulty.
type Slot struct {
	Type        QuestionType
	SubjectArea string
	Difficulty  Difficulty
}

// TypeCounts splits total across the three question formats using truncating
// division. The essay bucket absorbs the rounding remainder so the counts
// always sum to total.
func TypeCounts(total int, ratios TypeRatios) (mc, sa, essay int) {
	mc = total * ratios.MultipleChoice / 100
	sa = total * ratios.ShortAnswer / 100
	essay = total - mc - sa
	return mc, sa, essay
}

// DifficultyCounts splits count across the three difficulty levels; the hard
// bucket absorbs the remainder.
func DifficultyCounts(count int, ratios DifficultyRatios) (easy, medium, hard int) {
	easy = count * ratios.Easy / 100
	medium = count * ratios.Medium / 100
	hard = count - easy - medium
	return easy, medium, hard
}

// BuildDistribution expands a generation request into the ordered slot list
// the generator walks. Subjects are drawn randomly from req.SubjectAreas
// (falling back to the canonical list). Remainder buckets are clamped at zero
// so ratio combinations summing past 100% cannot produce negative counts.
func BuildDistribution(req GenerationRequest, rng *rand.Rand) []Slot {
	subjects := req.SubjectAreas
	if len(subjects) == 0 {
		subjects = SubjectAreas
	}

	mc, sa, essay := TypeCounts(req.TotalQuestions, req.TypeRatios)
	typeCounts := []struct {
		t QuestionType
		n int
	}{
		{TypeMultipleChoice, mc},
		{TypeShortAnswer, sa},
		{TypeEssay, essay},
	}

	var slots []Slot
	for _, tc := range typeCounts {
		if tc.n <= 0 {
			continue
		}
		easy, medium, hard := DifficultyCounts(tc.n, req.DifficultyRatios)
		diffCounts := []struct {
			d Difficulty
			n int
		}{
			{DifficultyEasy, easy},
			{DifficultyMedium, medium},
			{DifficultyHard, hard},
		}
		for _, dc := range diffCounts {
			for i := 0; i < dc.n; i++ {
				slots = append(slots, Slot{
					Type:        tc.t,
					SubjectArea: subjects[rng.Intn(len(subjects))],
					Difficulty:  dc.d,
				})
			}
		}
	}
	return slots
}

// ShortSubject returns the last " > " segment of a hierarchical subject area.
func ShortSubject(subject string) string {
	if idx := strings.LastIndex(subject, " > "); idx >= 0 {
		return subject[idx+len(" > "):]
	}
	return subject
}
