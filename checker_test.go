package examgen

import "testing"

func validMC() *Question {
	return &Question{
		QuestionID:    "BA_1001",
		QuestionType:  TypeMultipleChoice,
		Difficulty:    DifficultyMedium,
		Question:      "다음 중 올바른 것은?",
		Choices:       []string{"① a", "② b", "③ c", "④ d", "⑤ e"},
		CorrectAnswer: "③",
		Points:        "4",
	}
}

func TestCheckQuestion(t *testing.T) {
	if err := CheckQuestion(validMC()); err != nil {
		t.Errorf("valid question rejected: %v", err)
	}

	q := validMC()
	q.Question = "   "
	if err := CheckQuestion(q); err == nil {
		t.Error("blank question text accepted")
	}

	q = validMC()
	q.Choices = q.Choices[:4]
	if err := CheckQuestion(q); err == nil {
		t.Error("four-choice question accepted")
	}

	q = validMC()
	q.CorrectAnswer = "정답은 비밀"
	if err := CheckQuestion(q); err == nil {
		t.Error("answer without choice marker accepted")
	}

	// Plain numerals are accepted in place of circled markers.
	q = validMC()
	q.CorrectAnswer = "3"
	if err := CheckQuestion(q); err != nil {
		t.Errorf("plain numeral answer rejected: %v", err)
	}
}

func TestCheckQuestionRepairsPoints(t *testing.T) {
	q := validMC()
	q.Points = "사점"
	if err := CheckQuestion(q); err != nil {
		t.Fatalf("CheckQuestion failed: %v", err)
	}
	if q.Points != "4" {
		t.Errorf("points = %q, want repaired to %q", q.Points, "4")
	}

	q = validMC()
	q.Difficulty = DifficultyHard
	q.Points = ""
	if err := CheckQuestion(q); err != nil {
		t.Fatalf("CheckQuestion failed: %v", err)
	}
	if q.Points != "5" {
		t.Errorf("points = %q, want %q for hard difficulty", q.Points, "5")
	}
}

func TestFallbackQuestionsPassCheck(t *testing.T) {
	for _, qType := range QuestionTypes {
		for _, d := range Difficulties {
			slot := Slot{Type: qType, SubjectArea: SubjectAreas[0], Difficulty: d}
			q := FallbackQuestion(slot)
			if err := CheckQuestion(q); err != nil {
				t.Errorf("fallback %s/%s fails structural check: %v", qType, d, err)
			}
			if q.Points != PointsForDifficulty(d) {
				t.Errorf("fallback %s/%s points = %q, want %q", qType, d, q.Points, PointsForDifficulty(d))
			}
		}
	}
}
