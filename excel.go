package examgen

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// imagePlaceholder replaces base64 image payloads in the workbook; embedded
// diagrams are only carried by the PDF.
const imagePlaceholder = "[이미지 데이터 - PDF 참조]"

var excelHeaders = []string{
	"question_id", "subject_area", "difficulty", "title", "scenario",
	"question", "choices", "correct_answer", "alternative_answers",
	"model_answer", "grading_criteria", "explanation", "points",
	"visual_type", "visual_image", "generated_at",
}

// BuildExcel assembles the workbook: one sheet per question type, in
// presentation order, skipping types with no questions.
func BuildExcel(questions []Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	created := 0
	for _, qType := range QuestionTypes {
		var typed []*Question
		for i := range questions {
			if questions[i].QuestionType == qType {
				typed = append(typed, &questions[i])
			}
		}
		if len(typed) == 0 {
			continue
		}

		sheet := string(qType)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		created++

		for col, header := range excelHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return nil, fmt.Errorf("failed to write header: %w", err)
			}
		}

		for row, q := range typed {
			values := questionRow(q)
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write question %s: %w", q.QuestionID, err)
				}
			}
		}
	}

	if created > 0 {
		// drop the default sheet excelize creates
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func questionRow(q *Question) []string {
	image := ""
	if q.VisualImage != "" {
		image = imagePlaceholder
	}
	return []string{
		q.QuestionID,
		q.SubjectArea,
		string(q.Difficulty),
		q.Title,
		q.Scenario,
		q.Question,
		strings.Join(q.Choices, "\n"),
		q.CorrectAnswer,
		strings.Join(q.AlternativeAnswers, ", "),
		q.ModelAnswer,
		strings.Join(q.GradingCriteria, "\n"),
		q.Explanation,
		q.Points,
		string(q.VisualType),
		image,
		q.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
}
