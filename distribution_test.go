package examgen

import (
	"math/rand"
	"testing"
)

func TestTypeCounts(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		ratios TypeRatios
		mc     int
		sa     int
		essay  int
	}{
		{"default split", 50, TypeRatios{60, 25, 15}, 30, 12, 8},
		{"truncation goes to essay", 10, TypeRatios{33, 33, 34}, 3, 3, 4},
		{"all multiple choice", 20, TypeRatios{100, 0, 0}, 20, 0, 0},
		{"single question", 1, TypeRatios{60, 25, 15}, 0, 0, 1},
		{"zero total", 0, TypeRatios{60, 25, 15}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc, sa, essay := TypeCounts(tt.total, tt.ratios)
			if mc != tt.mc || sa != tt.sa || essay != tt.essay {
				t.Errorf("TypeCounts(%d, %+v) = %d/%d/%d, want %d/%d/%d",
					tt.total, tt.ratios, mc, sa, essay, tt.mc, tt.sa, tt.essay)
			}
			if mc+sa+essay != tt.total {
				t.Errorf("counts sum to %d, want %d", mc+sa+essay, tt.total)
			}
		})
	}
}

func TestDifficultyCounts(t *testing.T) {
	easy, medium, hard := DifficultyCounts(10, DifficultyRatios{50, 35, 15})
	if easy != 5 || medium != 3 || hard != 2 {
		t.Errorf("DifficultyCounts(10) = %d/%d/%d, want 5/3/2", easy, medium, hard)
	}

	// The hard bucket absorbs whatever truncation leaves over.
	for count := 0; count <= 100; count++ {
		e, m, h := DifficultyCounts(count, DifficultyRatios{50, 35, 15})
		if e+m+h != count {
			t.Fatalf("count %d: buckets sum to %d", count, e+m+h)
		}
	}
}

func TestBuildDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	req := GenerationRequest{
		TotalQuestions:   50,
		TypeRatios:       DefaultTypeRatios,
		DifficultyRatios: DefaultDifficultyRatios,
	}

	slots := BuildDistribution(req, rng)
	if len(slots) != 50 {
		t.Fatalf("got %d slots, want 50", len(slots))
	}

	byType := make(map[QuestionType]int)
	for _, slot := range slots {
		byType[slot.Type]++
		if slot.SubjectArea == "" {
			t.Fatal("slot has empty subject area")
		}
		if slot.Difficulty != DifficultyEasy && slot.Difficulty != DifficultyMedium && slot.Difficulty != DifficultyHard {
			t.Fatalf("slot has unexpected difficulty %q", slot.Difficulty)
		}
	}
	if byType[TypeMultipleChoice] != 30 || byType[TypeShortAnswer] != 12 || byType[TypeEssay] != 8 {
		t.Errorf("type split = %v, want 30/12/8", byType)
	}
}

func TestBuildDistributionCustomSubjects(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	subjects := []string{"영역 A", "영역 B"}
	req := GenerationRequest{
		TotalQuestions:   10,
		TypeRatios:       DefaultTypeRatios,
		DifficultyRatios: DefaultDifficultyRatios,
		SubjectAreas:     subjects,
	}

	for _, slot := range BuildDistribution(req, rng) {
		if slot.SubjectArea != "영역 A" && slot.SubjectArea != "영역 B" {
			t.Fatalf("slot subject %q not drawn from request list", slot.SubjectArea)
		}
	}
}

func TestBuildDistributionOversizedRatios(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	req := GenerationRequest{
		TotalQuestions:   10,
		TypeRatios:       TypeRatios{MultipleChoice: 80, ShortAnswer: 80, Essay: 0},
		DifficultyRatios: DefaultDifficultyRatios,
	}

	// 80% + 80% leaves the essay bucket negative; it must be skipped, not
	// expanded into a negative count.
	slots := BuildDistribution(req, rng)
	if len(slots) != 16 {
		t.Errorf("got %d slots, want 16 (8 MC + 8 SA, essay skipped)", len(slots))
	}
	for _, slot := range slots {
		if slot.Type == TypeEssay {
			t.Fatal("negative essay bucket produced slots")
		}
	}
}

func TestShortSubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"데이터 모델링 – 데이터 모델링 > 논리데이터 모델링", "논리데이터 모델링"},
		{"프로세스 모델링 – 분석 > 요구사항 정의", "요구사항 정의"},
		{"단일 영역", "단일 영역"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortSubject(tt.in); got != tt.want {
			t.Errorf("ShortSubject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
