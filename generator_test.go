package examgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateExamWithoutAPI(t *testing.T) {
	gen := NewExamGenerator(Config{})
	if gen.Configured() {
		t.Fatal("generator with empty config reports configured")
	}

	req := GenerationRequest{
		TotalQuestions:   10,
		TypeRatios:       DefaultTypeRatios,
		DifficultyRatios: DefaultDifficultyRatios,
		VisualRatio:      0,
	}

	questions, err := gen.GenerateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateExam failed: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(questions))
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			t.Errorf("question %d invalid: %v", i, err)
		}
		if questions[i].IsVisual() {
			t.Errorf("question %d is visual with 0%% visual ratio", i)
		}
	}
}

func TestGenerateExamFullVisualRatio(t *testing.T) {
	gen := NewExamGenerator(Config{})

	// Restrict subjects to an eligible one so every question should carry
	// a diagram.
	req := GenerationRequest{
		TotalQuestions:   5,
		TypeRatios:       TypeRatios{MultipleChoice: 100},
		DifficultyRatios: DefaultDifficultyRatios,
		VisualRatio:      100,
		SubjectAreas:     []string{"데이터 모델링 – 데이터 모델링 > 논리데이터 모델링"},
	}

	questions, err := gen.GenerateExam(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateExam failed: %v", err)
	}
	for i := range questions {
		if !questions[i].IsVisual() {
			t.Errorf("question %d has no diagram at 100%% visual ratio", i)
		}
	}
}

func TestGenerateExamCancellation(t *testing.T) {
	gen := NewExamGenerator(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := GenerationRequest{
		TotalQuestions:   10,
		TypeRatios:       DefaultTypeRatios,
		DifficultyRatios: DefaultDifficultyRatios,
	}

	questions, err := gen.GenerateExam(ctx, req)
	if err == nil {
		t.Error("cancelled context did not surface an error")
	}
	if len(questions) != 0 {
		t.Errorf("cancelled run produced %d questions", len(questions))
	}
}

func TestGenerateExamStream(t *testing.T) {
	gen := NewExamGenerator(Config{})

	req := GenerationRequest{
		TotalQuestions:   6,
		TypeRatios:       DefaultTypeRatios,
		DifficultyRatios: DefaultDifficultyRatios,
	}

	count := 0
	for q := range gen.GenerateExamStream(context.Background(), req) {
		if q == nil {
			t.Fatal("stream delivered nil question")
		}
		count++
	}
	if count != 6 {
		t.Errorf("stream delivered %d questions, want 6", count)
	}
}

func TestGenerateExamStreamLogsDuplicates(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("restoring working directory failed: %v", err)
		}
	})

	gen := NewExamGenerator(Config{})
	req := GenerationRequest{
		TotalQuestions:   4,
		TypeRatios:       TypeRatios{MultipleChoice: 100},
		DifficultyRatios: DefaultDifficultyRatios,
	}

	logger, err := NewGenerationLogger("stream-dup", req)
	if err != nil {
		t.Fatalf("NewGenerationLogger failed: %v", err)
	}
	gen.SetLogger(logger)

	// Without an API client every slot takes the same static fallback, so
	// everything after the first question is a duplicate.
	for range gen.GenerateExamStream(context.Background(), req) {
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("logger close failed: %v", err)
	}

	transcript, err := os.ReadFile(filepath.Join("log", "stream-dup.log"))
	if err != nil {
		t.Fatalf("failed to read transcript: %v", err)
	}
	if got := strings.Count(string(transcript), "DUPLICATE"); got != 3 {
		t.Errorf("transcript has %d duplicate events, want 3", got)
	}
}

func TestGenerateExamProgress(t *testing.T) {
	gen := NewExamGenerator(Config{})

	var calls int
	var lastDone, lastTotal int
	gen.Progress = func(done, total int, slot Slot) {
		calls++
		lastDone, lastTotal = done, total
	}

	req := GenerationRequest{
		TotalQuestions:   4,
		TypeRatios:       DefaultTypeRatios,
		DifficultyRatios: DefaultDifficultyRatios,
	}

	if _, err := gen.GenerateExam(context.Background(), req); err != nil {
		t.Fatalf("GenerateExam failed: %v", err)
	}
	if calls != 4 {
		t.Errorf("progress called %d times, want 4", calls)
	}
	if lastDone != lastTotal {
		t.Errorf("final progress %d/%d, want equal", lastDone, lastTotal)
	}
}
