package examgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// GenerationLogger writes a per-exam transcript of prompts, raw responses,
// fallbacks and duplicate hits. Logging is best-effort and never fails a run.
type GenerationLogger struct {
	file   *os.File
	mu     sync.Mutex
	examID string
}

// NewGenerationLogger creates a transcript log for one exam under log/.
func NewGenerationLogger(examID string, req GenerationRequest) (*GenerationLogger, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", examID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &GenerationLogger{file: file, examID: examID}

	logger.Logf("=== Exam Generation Log ===\n")
	logger.Logf("Exam ID: %s\n", examID)
	logger.Logf("Source: %s\n", req.SourceName)
	logger.Logf("Total Questions: %d\n", req.TotalQuestions)
	logger.Logf("Type Ratios: %d/%d/%d\n", req.TypeRatios.MultipleChoice, req.TypeRatios.ShortAnswer, req.TypeRatios.Essay)
	logger.Logf("Difficulty Ratios: %d/%d/%d\n", req.DifficultyRatios.Easy, req.DifficultyRatios.Medium, req.DifficultyRatios.Hard)
	logger.Logf("Visual Ratio: %d%%\n", req.VisualRatio)
	if req.SourceText != "" {
		logger.Logf("Source Text Length: %d characters\n", len(req.SourceText))
	}
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("========================\n\n")

	return logger, nil
}

// Logf writes a formatted log entry with timestamp
func (gl *GenerationLogger) Logf(format string, args ...interface{}) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(gl.file, "[%s] %s", timestamp, message)
	gl.file.Sync()
}

// LogLLMRequest logs a prompt sent to the completion API.
func (gl *GenerationLogger) LogLLMRequest(module, prompt string) {
	gl.Logf("=== LLM REQUEST (%s) ===\n", module)
	gl.Logf("Prompt:\n%s\n", prompt)
	gl.Logf("=====================\n\n")
}

// LogLLMResponse logs a raw completion API response.
func (gl *GenerationLogger) LogLLMResponse(module, response string) {
	gl.Logf("=== LLM RESPONSE (%s) ===\n", module)
	gl.Logf("Response:\n%s\n", response)
	gl.Logf("======================\n\n")
}

// LogFallback records that a slot was substituted with its static fallback.
func (gl *GenerationLogger) LogFallback(slot Slot, cause error) {
	gl.Logf("FALLBACK %s/%s/%s: %v\n", slot.Type, ShortSubject(slot.SubjectArea), slot.Difficulty, cause)
}

// LogVisual records a generated diagram question.
func (gl *GenerationLogger) LogVisual(questionID, visualType string) {
	gl.Logf("VISUAL %s: %s\n", questionID, visualType)
}

// LogDuplicate records a duplicate question text.
func (gl *GenerationLogger) LogDuplicate(questionID, duplicateOf string) {
	gl.Logf("Question %s: DUPLICATE of %s\n", questionID, duplicateOf)
}

// Close closes the log file
func (gl *GenerationLogger) Close() error {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if gl.file != nil {
		fmt.Fprintf(gl.file, "[%s] === Exam Generation Complete ===\n", time.Now().Format("15:04:05.000"))
		fmt.Fprintf(gl.file, "[%s] Completed: %s\n", time.Now().Format("15:04:05.000"), time.Now().Format(time.RFC3339))
		return gl.file.Close()
	}
	return nil
}
