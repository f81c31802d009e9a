package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"examgen"
)

func main() {
	var (
		sourcePath  = flag.String("source", "", "Path to the source PDF")
		questions   = flag.Int("questions", 0, "Number of questions to generate (default from config)")
		mcRatio     = flag.Int("mc", examgen.DefaultTypeRatios.MultipleChoice, "Multiple-choice ratio in percent")
		saRatio     = flag.Int("sa", examgen.DefaultTypeRatios.ShortAnswer, "Short-answer ratio in percent")
		essayRatio  = flag.Int("essay", examgen.DefaultTypeRatios.Essay, "Essay ratio in percent")
		easyRatio   = flag.Int("easy", examgen.DefaultDifficultyRatios.Easy, "Easy difficulty ratio in percent")
		mediumRatio = flag.Int("medium", examgen.DefaultDifficultyRatios.Medium, "Medium difficulty ratio in percent")
		hardRatio   = flag.Int("hard", examgen.DefaultDifficultyRatios.Hard, "Hard difficulty ratio in percent")
		visualRatio = flag.Int("visual", examgen.DefaultVisualRatio, "Visual question ratio in percent")
		outputDir   = flag.String("output", "output", "Directory for generated files")
		layout      = flag.String("layout", "separated", "PDF answer layout (separated, integrated)")
		zipOnly     = flag.Bool("zip", false, "Write a single ZIP package instead of individual files")
		verbose     = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	cfg := examgen.LoadConfig()
	examgen.SetVerbose(*verbose || cfg.Debug)

	if !cfg.IsConfigured() {
		log.Printf("Azure OpenAI is not configured; all questions will use static fallbacks")
	}

	total := *questions
	if total <= 0 {
		total = cfg.DefaultQuestionCount
	}

	req := examgen.GenerationRequest{
		TotalQuestions:   total,
		TypeRatios:       examgen.TypeRatios{MultipleChoice: *mcRatio, ShortAnswer: *saRatio, Essay: *essayRatio},
		DifficultyRatios: examgen.DifficultyRatios{Easy: *easyRatio, Medium: *mediumRatio, Hard: *hardRatio},
		VisualRatio:      *visualRatio,
	}

	if *sourcePath != "" {
		text, err := examgen.ExtractPDFFile(*sourcePath)
		if err != nil {
			log.Printf("PDF extraction failed, continuing with fallback questions: %v", err)
		} else {
			req.SourceText = text
			req.SourceName = filepath.Base(*sourcePath)
			log.Printf("Extracted %d characters from %s", len(text), req.SourceName)
		}
	}

	pdfFormat := examgen.FormatSeparated
	if *layout == "integrated" {
		pdfFormat = examgen.FormatIntegrated
	}

	generator := examgen.NewExamGenerator(cfg)
	generator.Progress = func(done, total int, slot examgen.Slot) {
		fmt.Printf("\r%d/%d 문제 생성 중 (%s/%s)", done, total, slot.Type, slot.Difficulty)
	}

	runID := fmt.Sprintf("cli_%s", time.Now().Format("20060102_150405"))
	logger, err := examgen.NewGenerationLogger(runID, req)
	if err != nil {
		log.Printf("Failed to create generation log: %v", err)
	} else {
		generator.SetLogger(logger)
		defer logger.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := generator.GenerateExam(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate exam: %v", err)
	}
	fmt.Println()
	log.Printf("Generated %d questions in %s", len(result), time.Since(start).Round(time.Second))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	now := time.Now()

	if *zipOnly {
		data, err := examgen.BuildZip(result, pdfFormat)
		if err != nil {
			log.Fatalf("Failed to build ZIP package: %v", err)
		}
		writeArtifact(*outputDir, examgen.TimestampFilename("BA_exam_package", "zip", now), data)
		return
	}

	jsonData, err := examgen.BuildJSON(result)
	if err != nil {
		log.Fatalf("Failed to build JSON: %v", err)
	}
	writeArtifact(*outputDir, examgen.TimestampFilename("BA_questions", "json", now), jsonData)

	statsData, err := examgen.BuildStatsJSON(result)
	if err != nil {
		log.Fatalf("Failed to build statistics: %v", err)
	}
	writeArtifact(*outputDir, examgen.TimestampFilename("BA_question_stats", "json", now), statsData)

	excelData, err := examgen.BuildExcel(result)
	if err != nil {
		log.Fatalf("Failed to build Excel workbook: %v", err)
	}
	writeArtifact(*outputDir, examgen.TimestampFilename("BA_questions", "xlsx", now), excelData)

	pdfData, err := examgen.BuildPDF(result, pdfFormat)
	if err != nil {
		log.Fatalf("Failed to build PDF booklet: %v", err)
	}
	writeArtifact(*outputDir, examgen.TimestampFilename("BA_questions", "pdf", now), pdfData)
}

func writeArtifact(dir, name string, data []byte) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	log.Printf("Saved: %s (%d bytes)", path, len(data))
}
