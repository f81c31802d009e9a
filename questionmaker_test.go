package examgen

import (
	"context"
	"strings"
	"testing"
)

func TestParseQuestionResponse(t *testing.T) {
	content := `문제를 생성했습니다:

{
    "question_type": "선다형",
    "subject_area": "데이터 모델링 – 데이터 모델링 > 논리데이터 모델링",
    "difficulty": "중",
    "title": "정규화 이해",
    "scenario": "쇼핑몰 주문 테이블을 설계하고 있다.",
    "question": "다음 중 제3정규형의 조건은?",
    "choices": ["① a", "② b", "③ c", "④ d", "⑤ e"],
    "correct_answer": "③",
    "explanation": "이행적 함수 종속 제거가 제3정규형의 조건입니다.",
    "points": "4"
}

추가 설명이 필요하면 말씀해주세요.`

	q, err := ParseQuestionResponse(content)
	if err != nil {
		t.Fatalf("ParseQuestionResponse failed: %v", err)
	}
	if q.QuestionType != TypeMultipleChoice {
		t.Errorf("question type = %q, want %q", q.QuestionType, TypeMultipleChoice)
	}
	if q.Title != "정규화 이해" {
		t.Errorf("title = %q", q.Title)
	}
	if len(q.Choices) != 5 {
		t.Errorf("got %d choices, want 5", len(q.Choices))
	}
	if q.CorrectAnswer != "③" {
		t.Errorf("correct answer = %q, want ③", q.CorrectAnswer)
	}
}

func TestParseQuestionResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no JSON object", "죄송합니다, 문제를 생성할 수 없습니다."},
		{"empty response", ""},
		{"malformed JSON", `{"question_type": "선다형", "choices": [}`},
		{"braces out of order", `} 이상한 내용 {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuestionResponse(tt.content); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUnconfiguredMakerFallsBack(t *testing.T) {
	maker := NewQuestionMaker(Config{})
	if maker.Configured() {
		t.Fatal("maker with empty config reports configured")
	}

	slot := Slot{Type: TypeShortAnswer, SubjectArea: SubjectAreas[0], Difficulty: DifficultyEasy}
	q := maker.GenerateQuestion(context.Background(), slot, "학습자료", nil)
	if q == nil {
		t.Fatal("GenerateQuestion returned nil")
	}
	if !strings.HasPrefix(q.QuestionID, "FALLBACK_") {
		t.Errorf("question ID = %q, want FALLBACK_ prefix", q.QuestionID)
	}
	if q.QuestionType != slot.Type || q.Difficulty != slot.Difficulty {
		t.Errorf("fallback does not carry slot fields: %+v", q)
	}
}

func TestBuildPromptPerType(t *testing.T) {
	qm := &QuestionMaker{}
	source := "학습자료 본문"

	tests := []struct {
		qType  QuestionType
		marker string
	}{
		{TypeMultipleChoice, `"choices"`},
		{TypeShortAnswer, `"alternative_answers"`},
		{TypeEssay, `"grading_criteria"`},
	}
	for _, tt := range tests {
		slot := Slot{Type: tt.qType, SubjectArea: SubjectAreas[0], Difficulty: DifficultyMedium}
		prompt := qm.buildPrompt(slot, source)
		if !strings.Contains(prompt, source) {
			t.Errorf("%s prompt missing source text", tt.qType)
		}
		if !strings.Contains(prompt, slot.SubjectArea) {
			t.Errorf("%s prompt missing subject area", tt.qType)
		}
		if !strings.Contains(prompt, tt.marker) {
			t.Errorf("%s prompt missing format marker %s", tt.qType, tt.marker)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	korean := strings.Repeat("가", 100)
	got := truncateRunes(korean, 10)
	if got != strings.Repeat("가", 10) {
		t.Errorf("truncateRunes broke multibyte boundary: %q", got)
	}
	if truncateRunes("short", 10) != "short" {
		t.Error("truncateRunes modified text under the limit")
	}
}

func TestGenerateQuestionID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := generateQuestionID("BA")
		if !strings.HasPrefix(id, "BA_") {
			t.Fatalf("id %q missing prefix", id)
		}
		if len(id) != len("BA_")+4 {
			t.Fatalf("id %q does not carry a 4-digit suffix", id)
		}
	}
}
