package examgen

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleQuestions() []Question {
	now := time.Now()
	return []Question{
		{
			QuestionID:    "BA_1001",
			QuestionType:  TypeMultipleChoice,
			SubjectArea:   "데이터 모델링 – 데이터 모델링 > 논리데이터 모델링",
			Difficulty:    DifficultyEasy,
			Title:         "정규화",
			Question:      "다음 중 제1정규형 위반은?",
			Choices:       []string{"① a", "② b", "③ c", "④ d", "⑤ e"},
			CorrectAnswer: "②",
			Points:        "3",
			GeneratedAt:   now,
		},
		{
			QuestionID:         "BA_1002",
			QuestionType:       TypeShortAnswer,
			SubjectArea:        "프로세스 모델링 – 분석 > 요구사항 정의",
			Difficulty:         DifficultyMedium,
			Title:              "요구사항 도출",
			Question:           "이해관계자의 요구를 수집하는 활동은?",
			CorrectAnswer:      "요구사항 도출",
			AlternativeAnswers: []string{"Requirements Elicitation"},
			Points:             "4",
			GeneratedAt:        now,
		},
		{
			QuestionID:      "BA_1003",
			QuestionType:    TypeEssay,
			SubjectArea:     "프로세스 모델링 – 분석 > 개발방법론",
			Difficulty:      DifficultyHard,
			Title:           "애자일",
			Question:        "애자일의 특징을 서술하시오.",
			ModelAnswer:     "반복 개발과 지속적 피드백.",
			GradingCriteria: []string{"특징 설명", "장단점 서술"},
			Points:          "5",
			GeneratedAt:     now,
		},
	}
}

func TestTimestampFilename(t *testing.T) {
	at := time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	got := TimestampFilename("BA_questions", "json", at)
	want := "BA_questions_20260828_143005.json"
	if got != want {
		t.Errorf("TimestampFilename = %q, want %q", got, want)
	}
}

func TestBuildJSON(t *testing.T) {
	questions := sampleQuestions()
	data, err := BuildJSON(questions)
	if err != nil {
		t.Fatalf("BuildJSON failed: %v", err)
	}

	var decoded []Question
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != len(questions) {
		t.Fatalf("decoded %d questions, want %d", len(decoded), len(questions))
	}
	if decoded[0].QuestionID != "BA_1001" || decoded[2].ModelAnswer == "" {
		t.Error("round trip lost question fields")
	}
}

func TestBuildStatsJSON(t *testing.T) {
	data, err := BuildStatsJSON(sampleQuestions())
	if err != nil {
		t.Fatalf("BuildStatsJSON failed: %v", err)
	}

	var stats Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if stats.TotalQuestions != 3 {
		t.Errorf("total = %d, want 3", stats.TotalQuestions)
	}
}

func TestBuildExcel(t *testing.T) {
	data, err := BuildExcel(sampleQuestions())
	if err != nil {
		t.Fatalf("BuildExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	for _, qType := range QuestionTypes {
		found := false
		for _, sheet := range sheets {
			if sheet == string(qType) {
				found = true
			}
		}
		if !found {
			t.Errorf("workbook missing sheet %q (have %v)", qType, sheets)
		}
	}

	id, err := f.GetCellValue(string(TypeMultipleChoice), "A2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if id != "BA_1001" {
		t.Errorf("first data cell = %q, want BA_1001", id)
	}
}

func TestBuildExcelSkipsEmptyTypes(t *testing.T) {
	questions := sampleQuestions()[:1] // multiple choice only
	data, err := BuildExcel(questions)
	if err != nil {
		t.Fatalf("BuildExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		if sheet == string(TypeEssay) || sheet == string(TypeShortAnswer) {
			t.Errorf("workbook has empty sheet %q", sheet)
		}
	}
}

func TestBuildPDF(t *testing.T) {
	for _, format := range []PDFFormat{FormatSeparated, FormatIntegrated} {
		data, err := BuildPDF(sampleQuestions(), format)
		if err != nil {
			t.Fatalf("BuildPDF(%s) failed: %v", format, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("BuildPDF(%s) output is not a PDF", format)
		}
	}
}

func TestBuildZip(t *testing.T) {
	data, err := BuildZip(sampleQuestions(), FormatSeparated)
	if err != nil {
		t.Fatalf("BuildZip failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a valid ZIP: %v", err)
	}

	patterns := []*regexp.Regexp{
		regexp.MustCompile(`^BA_questions_\d{8}_\d{6}\.json$`),
		regexp.MustCompile(`^BA_questions_\d{8}_\d{6}\.xlsx$`),
		regexp.MustCompile(`^BA_questions_\d{8}_\d{6}\.pdf$`),
		regexp.MustCompile(`^BA_question_stats_\d{8}_\d{6}\.json$`),
	}

	if len(zr.File) != len(patterns) {
		t.Fatalf("archive has %d entries, want %d", len(zr.File), len(patterns))
	}

	for _, pattern := range patterns {
		found := false
		for _, file := range zr.File {
			if pattern.MatchString(file.Name) {
				found = true
				if file.UncompressedSize64 == 0 {
					t.Errorf("entry %s is empty", file.Name)
				}
			}
		}
		if !found {
			t.Errorf("archive missing entry matching %s", pattern)
		}
	}
}
