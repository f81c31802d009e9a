package examgen

import (
	"math"
	"time"
)

// VisualStats summarizes diagram usage across a question set.
type VisualStats struct {
	VisualCount  int            `json:"visual_count"`
	TextCount    int            `json:"text_count"`
	VisualRatio  float64        `json:"visual_ratio"` // percent, one decimal
	ByVisualType map[string]int `json:"by_visual_type,omitempty"`
}

// Statistics aggregates a generated question set.
type Statistics struct {
	TotalQuestions int            `json:"total_questions"`
	GeneratedAt    time.Time      `json:"generated_at"`
	ByType         map[string]int `json:"by_type"`
	ByDifficulty   map[string]int `json:"by_difficulty"`
	BySubject      map[string]int `json:"by_subject"`
	DuplicateCount int            `json:"duplicate_count"`
	Visual         VisualStats    `json:"visual"`
}

// GenerateStatistics computes the distribution report for a question set.
// Subjects are keyed by their short (last-segment) name.
func GenerateStatistics(questions []Question) Statistics {
	stats := Statistics{
		TotalQuestions: len(questions),
		GeneratedAt:    time.Now(),
		ByType:         make(map[string]int),
		ByDifficulty:   make(map[string]int),
		BySubject:      make(map[string]int),
		Visual:         VisualStats{ByVisualType: make(map[string]int)},
	}

	dedup := NewQuestionDedup()
	for i := range questions {
		q := &questions[i]
		stats.ByType[string(q.QuestionType)]++
		stats.ByDifficulty[string(q.Difficulty)]++
		stats.BySubject[q.ShortSubject()]++

		if dup, _ := dedup.Observe(q); dup {
			stats.DuplicateCount++
		}

		if q.IsVisual() {
			stats.Visual.VisualCount++
			stats.Visual.ByVisualType[string(q.VisualType)]++
		}
	}

	stats.Visual.TextCount = len(questions) - stats.Visual.VisualCount
	if len(questions) > 0 {
		ratio := float64(stats.Visual.VisualCount) / float64(len(questions)) * 100
		stats.Visual.VisualRatio = math.Round(ratio*10) / 10
	}
	return stats
}
