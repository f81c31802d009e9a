package examgen

import (
	"fmt"
	"time"
)

// QuestionType is one of the three exam question formats.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "선다형"
	TypeShortAnswer    QuestionType = "단답형"
	TypeEssay          QuestionType = "서술형"
)

// QuestionTypes lists the formats in presentation order.
var QuestionTypes = []QuestionType{TypeMultipleChoice, TypeShortAnswer, TypeEssay}

// Difficulty is an ordinal difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "하"
	DifficultyMedium Difficulty = "중"
	DifficultyHard   Difficulty = "상"
)

// Difficulties lists the levels from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// VisualType identifies the diagram attached to a visual question.
type VisualType string

const (
	VisualERD       VisualType = "erd"
	VisualTable     VisualType = "table"
	VisualUML       VisualType = "uml"
	VisualFlowchart VisualType = "flowchart"
	VisualUIMockup  VisualType = "ui_mockup"
)

// Question is a single generated exam question. Exactly one of the three
// answer-field groups is populated, determined by QuestionType:
// multiple-choice uses Choices+CorrectAnswer, short-answer uses
// CorrectAnswer+AlternativeAnswers, essay uses ModelAnswer+GradingCriteria.
type Question struct {
	QuestionID   string       `json:"question_id"`
	QuestionType QuestionType `json:"question_type"`
	SubjectArea  string       `json:"subject_area"`
	Difficulty   Difficulty   `json:"difficulty"`
	Title        string       `json:"title"`
	Scenario     string       `json:"scenario,omitempty"`
	Question     string       `json:"question"`

	Choices            []string `json:"choices,omitempty"`
	CorrectAnswer      string   `json:"correct_answer,omitempty"`
	AlternativeAnswers []string `json:"alternative_answers,omitempty"`
	ModelAnswer        string   `json:"model_answer,omitempty"`
	GradingCriteria    []string `json:"grading_criteria,omitempty"`

	Explanation string    `json:"explanation,omitempty"`
	Points      string    `json:"points"`
	GeneratedAt time.Time `json:"generated_at"`

	VisualType  VisualType `json:"visual_type,omitempty"`
	VisualImage string     `json:"visual_image,omitempty"` // base64 PNG
}

// IsVisual reports whether the question carries an embedded diagram.
func (q *Question) IsVisual() bool {
	return q.VisualImage != ""
}

// ShortSubject returns the last segment of the hierarchical subject area.
func (q *Question) ShortSubject() string {
	return ShortSubject(q.SubjectArea)
}

// Validate checks that exactly one answer-field group is populated and that
// it matches the question type.
func (q *Question) Validate() error {
	mc := len(q.Choices) > 0
	essay := q.ModelAnswer != "" || len(q.GradingCriteria) > 0

	switch q.QuestionType {
	case TypeMultipleChoice:
		if !mc || q.CorrectAnswer == "" {
			return fmt.Errorf("multiple-choice question %s missing choices or correct answer", q.QuestionID)
		}
		if essay || len(q.AlternativeAnswers) > 0 {
			return fmt.Errorf("multiple-choice question %s carries foreign answer fields", q.QuestionID)
		}
	case TypeShortAnswer:
		if q.CorrectAnswer == "" {
			return fmt.Errorf("short-answer question %s missing correct answer", q.QuestionID)
		}
		if mc || essay {
			return fmt.Errorf("short-answer question %s carries foreign answer fields", q.QuestionID)
		}
	case TypeEssay:
		if !essay {
			return fmt.Errorf("essay question %s missing model answer and grading criteria", q.QuestionID)
		}
		if mc || q.CorrectAnswer != "" || len(q.AlternativeAnswers) > 0 {
			return fmt.Errorf("essay question %s carries foreign answer fields", q.QuestionID)
		}
	default:
		return fmt.Errorf("question %s has unknown type %q", q.QuestionID, q.QuestionType)
	}
	return nil
}

// ExamStatus tracks an exam set through background generation.
type ExamStatus string

const (
	StatusGenerating ExamStatus = "generating"
	StatusCompleted  ExamStatus = "completed"
	StatusFailed     ExamStatus = "failed"
)

// Exam is a complete generated question set with metadata.
type Exam struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	SourceName     string     `json:"source_name"`
	TotalQuestions int        `json:"total_questions"`
	Questions      []Question `json:"questions"`
	CreatedAt      time.Time  `json:"created_at"`
	Status         ExamStatus `json:"status"`
}

// TypeRatios holds the percentage split across question formats.
type TypeRatios struct {
	MultipleChoice int `json:"multiple_choice"`
	ShortAnswer    int `json:"short_answer"`
	Essay          int `json:"essay"`
}

// DifficultyRatios holds the percentage split across difficulty levels.
type DifficultyRatios struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// GenerationRequest describes one generation run.
type GenerationRequest struct {
	TotalQuestions   int              `json:"total_questions"`
	TypeRatios       TypeRatios       `json:"type_ratios"`
	DifficultyRatios DifficultyRatios `json:"difficulty_ratios"`
	VisualRatio      int              `json:"visual_ratio"` // percent of eligible questions
	SourceText       string           `json:"-"`
	SourceName       string           `json:"source_name,omitempty"`
	SubjectAreas     []string         `json:"subject_areas,omitempty"`
}

// PointsForDifficulty returns the default score for a difficulty level.
func PointsForDifficulty(d Difficulty) string {
	switch d {
	case DifficultyEasy:
		return "3"
	case DifficultyHard:
		return "5"
	default:
		return "4"
	}
}
