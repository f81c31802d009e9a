package examgen

import (
	"context"
	"math/rand"
	"time"
)

// ProgressFunc reports generation progress after each question. slot is the
// plan entry the question was generated for.
type ProgressFunc func(done, total int, slot Slot)

// ExamGenerator orchestrates one generation run: it expands the request into
// a slot distribution, walks the slots serially, and routes each one to
// either the diagram templates or the completion API.
type ExamGenerator struct {
	maker  *QuestionMaker
	visual *VisualGenerator
	rng    *rand.Rand
	logger *GenerationLogger

	// Progress, when set, is called after every generated question.
	Progress ProgressFunc
}

// NewExamGenerator creates a generator from the application configuration.
func NewExamGenerator(cfg Config) *ExamGenerator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &ExamGenerator{
		maker:  NewQuestionMaker(cfg),
		visual: NewVisualGenerator(rng),
		rng:    rng,
	}
}

// SetLogger attaches a per-run transcript logger.
func (eg *ExamGenerator) SetLogger(logger *GenerationLogger) {
	eg.logger = logger
}

// Configured reports whether the completion API is reachable in principle.
func (eg *ExamGenerator) Configured() bool {
	return eg.maker.Configured()
}

// GenerateExam generates the full question set for the request. Individual
// question failures are absorbed by the fallback policy; the only error paths
// are context cancellation between questions.
func (eg *ExamGenerator) GenerateExam(ctx context.Context, req GenerationRequest) ([]Question, error) {
	slots := BuildDistribution(req, eg.rng)
	dedup := NewQuestionDedup()
	duplicates := 0

	questions := make([]Question, 0, len(slots))
	for i, slot := range slots {
		if err := ctx.Err(); err != nil {
			return questions, err
		}

		q := eg.generateOne(ctx, slot, req)

		if dup, of := dedup.Observe(q); dup {
			duplicates++
			VerboseLog("question %s duplicates %s", q.QuestionID, of)
			if eg.logger != nil {
				eg.logger.LogDuplicate(q.QuestionID, of)
			}
		}

		questions = append(questions, *q)
		if eg.Progress != nil {
			eg.Progress(i+1, len(slots), slot)
		}
	}

	VerboseLog("generation complete: %d questions, %d duplicates", len(questions), duplicates)
	return questions, nil
}

// GenerateExamStream generates questions into a channel so callers can
// consume them as they are produced. The channel is closed when the run ends
// or the context is cancelled.
func (eg *ExamGenerator) GenerateExamStream(ctx context.Context, req GenerationRequest) <-chan *Question {
	out := make(chan *Question)
	go func() {
		defer close(out)
		slots := BuildDistribution(req, eg.rng)
		dedup := NewQuestionDedup()
		for i, slot := range slots {
			if ctx.Err() != nil {
				return
			}
			q := eg.generateOne(ctx, slot, req)

			if dup, of := dedup.Observe(q); dup {
				VerboseLog("question %s duplicates %s", q.QuestionID, of)
				if eg.logger != nil {
					eg.logger.LogDuplicate(q.QuestionID, of)
				}
			}

			select {
			case out <- q:
			case <-ctx.Done():
				return
			}
			if eg.Progress != nil {
				eg.Progress(i+1, len(slots), slot)
			}
		}
	}()
	return out
}

// generateOne produces the question for one slot, deciding between a diagram
// template and a text question. A failed diagram render degrades to a text
// question rather than failing the slot.
func (eg *ExamGenerator) generateOne(ctx context.Context, slot Slot, req GenerationRequest) *Question {
	if eg.shouldGenerateVisual(slot, req.VisualRatio) {
		q, err := eg.visual.GenerateVisualQuestion(slot)
		if err == nil {
			if eg.logger != nil {
				eg.logger.LogVisual(q.QuestionID, string(q.VisualType))
			}
			return q
		}
		VerboseLog("visual generation failed for %s: %v", slot.SubjectArea, err)
	}
	return eg.maker.GenerateQuestion(ctx, slot, req.SourceText, eg.logger)
}

func (eg *ExamGenerator) shouldGenerateVisual(slot Slot, visualRatio int) bool {
	if visualRatio <= 0 || !EligibleSubject(slot.SubjectArea) {
		return false
	}
	return eg.rng.Float64() < float64(visualRatio)/100
}
