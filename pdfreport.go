package examgen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFFormat selects how answers are laid out in the booklet.
type PDFFormat string

const (
	// FormatSeparated prints all questions first, then an answer-key section.
	FormatSeparated PDFFormat = "separated"
	// FormatIntegrated prints each question's answer directly under it.
	FormatIntegrated PDFFormat = "integrated"
)

// pdfBuilder assembles the A4 exam booklet.
type pdfBuilder struct {
	pdf      *gofpdf.Fpdf
	fontName string
}

// BuildPDF renders the exam booklet: title page, statistics page, questions
// with embedded diagrams, and an answer key. Per-question failures substitute
// a placeholder block instead of aborting the document.
func BuildPDF(questions []Question, format PDFFormat) ([]byte, error) {
	b := &pdfBuilder{pdf: gofpdf.New("P", "mm", "A4", "")}
	b.setupFont()
	b.pdf.SetMargins(25, 25, 25)
	b.pdf.SetAutoPageBreak(true, 25)

	b.titlePage(len(questions))
	b.statisticsPage(questions)

	if format == FormatIntegrated {
		b.questionSection(questions, true)
	} else {
		b.questionSection(questions, false)
		b.answerSection(questions)
	}

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// setupFont registers a Hangul-capable UTF-8 font when one is installed.
// Without one the booklet falls back to Helvetica, which garbles Korean text
// but still produces a document.
func (b *pdfBuilder) setupFont() {
	for _, path := range koreanFontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(path), ".ttf") {
			continue // gofpdf UTF-8 loader handles TTF only
		}
		b.pdf.AddUTF8Font("Korean", "", path)
		b.pdf.AddUTF8Font("Korean", "B", path)
		if b.pdf.Err() {
			b.pdf = gofpdf.New("P", "mm", "A4", "")
			continue
		}
		b.fontName = "Korean"
		return
	}
	VerboseLog("no Korean font found, PDF falls back to Helvetica")
	b.fontName = "Helvetica"
}

func (b *pdfBuilder) heading(text string) {
	b.pdf.SetFont(b.fontName, "B", 16)
	b.pdf.MultiCell(0, 10, text, "", "C", false)
	b.pdf.Ln(4)
}

func (b *pdfBuilder) subheading(text string) {
	b.pdf.SetFont(b.fontName, "B", 12)
	b.pdf.MultiCell(0, 8, text, "", "L", false)
}

func (b *pdfBuilder) para(text string) {
	b.pdf.SetFont(b.fontName, "", 10)
	b.pdf.MultiCell(0, 6, text, "", "L", false)
}

func (b *pdfBuilder) answerLine(text string) {
	b.pdf.SetFont(b.fontName, "", 9)
	b.pdf.MultiCell(0, 5, "    "+text, "", "L", false)
}

func (b *pdfBuilder) titlePage(total int) {
	b.pdf.AddPage()
	b.pdf.Ln(40)
	b.heading("Business Application 모델링")
	b.heading("문제집")
	b.pdf.Ln(8)
	b.para(fmt.Sprintf("생성일시: %s", time.Now().Format("2006년 01월 02일 15시 04분")))
	b.para(fmt.Sprintf("총 문제수: %d개", total))
}

func (b *pdfBuilder) statisticsPage(questions []Question) {
	stats := GenerateStatistics(questions)

	b.pdf.AddPage()
	b.heading("문제 통계")

	b.subheading("1. 문제 유형별 분포")
	for _, qType := range QuestionTypes {
		if count := stats.ByType[string(qType)]; count > 0 {
			b.para(fmt.Sprintf("• %s: %d개", qType, count))
		}
	}
	b.pdf.Ln(4)

	b.subheading("2. 난이도별 분포")
	for _, d := range Difficulties {
		if count := stats.ByDifficulty[string(d)]; count > 0 {
			b.para(fmt.Sprintf("• %s: %d개", d, count))
		}
	}

	if stats.Visual.VisualCount > 0 {
		b.pdf.Ln(4)
		b.subheading("3. 시각적 요소 포함 문제")
		b.para(fmt.Sprintf("• 시각적 문제: %d개", stats.Visual.VisualCount))
		b.para(fmt.Sprintf("• 텍스트 문제: %d개", stats.Visual.TextCount))
		b.para(fmt.Sprintf("• 시각적 비율: %.1f%%", stats.Visual.VisualRatio))
	}
}

func (b *pdfBuilder) questionSection(questions []Question, integrated bool) {
	b.pdf.AddPage()
	if integrated {
		b.heading("문제 및 정답")
	} else {
		b.heading("문제")
	}

	for i := range questions {
		q := &questions[i]
		num := i + 1

		if err := b.writeQuestion(q, num); err != nil {
			VerboseLog("question %d render failed: %v", num, err)
			b.para(fmt.Sprintf("문제 %d: 처리 오류 발생", num))
		}

		if integrated {
			b.writeAnswer(q)
			b.pdf.Ln(6)
		} else {
			b.pdf.Ln(4)
		}

		perPage := 3
		if integrated {
			perPage = 2
		}
		if q.IsVisual() {
			perPage = 1
		}
		if num%perPage == 0 && num < len(questions) {
			b.pdf.AddPage()
		}
	}
}

func (b *pdfBuilder) writeQuestion(q *Question, num int) error {
	title := q.Title
	if title == "" {
		title = fmt.Sprintf("문제 %d", num)
	}
	b.subheading(fmt.Sprintf("문제 %d. %s", num, title))

	info := fmt.Sprintf("유형: %s | 난이도: %s | 배점: %s점", q.QuestionType, q.Difficulty, q.Points)
	if q.VisualType != "" {
		info += fmt.Sprintf(" | 시각요소: %s", strings.ToUpper(string(q.VisualType)))
	}
	b.answerLine(info)

	if q.Scenario != "" {
		b.para(fmt.Sprintf("[시나리오] %s", q.Scenario))
	}

	if q.IsVisual() {
		if err := b.embedImage(q, num); err != nil {
			b.para(fmt.Sprintf("[시각 자료: %s - 표시 오류]", strings.ToUpper(string(q.VisualType))))
		}
	}

	b.para(fmt.Sprintf("문제: %s", q.Question))
	if q.QuestionType == TypeMultipleChoice {
		for _, choice := range q.Choices {
			b.answerLine(choice)
		}
	}
	return nil
}

// embedImage decodes the base64 diagram and places it scaled to 90% of the
// usable page width.
func (b *pdfBuilder) embedImage(q *Question, num int) error {
	data, err := base64.StdEncoding.DecodeString(q.VisualImage)
	if err != nil {
		return fmt.Errorf("failed to decode image for question %d: %w", num, err)
	}

	name := fmt.Sprintf("q%d_%s", num, q.QuestionID)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	b.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if b.pdf.Err() {
		return fmt.Errorf("failed to register image for question %d", num)
	}

	pageW, _ := b.pdf.GetPageSize()
	left, _, right, _ := b.pdf.GetMargins()
	width := (pageW - left - right) * 0.9

	b.pdf.ImageOptions(name, left, b.pdf.GetY(), width, 0, true, opts, 0, "")
	b.pdf.Ln(4)
	return nil
}

func (b *pdfBuilder) answerSection(questions []Question) {
	b.pdf.AddPage()
	b.heading("정답 및 해설")

	for i := range questions {
		q := &questions[i]
		num := i + 1

		b.subheading(fmt.Sprintf("문제 %d.", num))
		b.writeAnswer(q)
		b.pdf.Ln(4)

		if num%8 == 0 && num < len(questions) {
			b.pdf.AddPage()
		}
	}
}

func (b *pdfBuilder) writeAnswer(q *Question) {
	switch q.QuestionType {
	case TypeMultipleChoice:
		b.para(fmt.Sprintf("정답: %s", q.CorrectAnswer))
	case TypeShortAnswer:
		answer := fmt.Sprintf("정답: %s", q.CorrectAnswer)
		if len(q.AlternativeAnswers) > 0 {
			answer += fmt.Sprintf(" (가능한 답: %s)", strings.Join(q.AlternativeAnswers, ", "))
		}
		b.para(answer)
	case TypeEssay:
		b.para(fmt.Sprintf("모범답안: %s", q.ModelAnswer))
		if len(q.GradingCriteria) > 0 {
			b.para("채점기준:")
			for j, criteria := range q.GradingCriteria {
				b.answerLine(fmt.Sprintf("%d. %s", j+1, criteria))
			}
		}
	}

	if q.Explanation != "" {
		b.para(fmt.Sprintf("해설: %s", q.Explanation))
	}
}
