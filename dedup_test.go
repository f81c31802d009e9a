package examgen

import "testing"

func TestQuestionDedup(t *testing.T) {
	dedup := NewQuestionDedup()

	first := &Question{QuestionID: "BA_1001", Question: "정규화의 목적은 무엇인가?"}
	if dup, _ := dedup.Observe(first); dup {
		t.Error("first question reported as duplicate")
	}

	// Whitespace, case and punctuation differences still collide.
	reworded := &Question{QuestionID: "BA_1002", Question: "정규화의  목적은 무엇인가 ?"}
	dup, of := dedup.Observe(reworded)
	if !dup {
		t.Error("trivially reworded question not reported as duplicate")
	}
	if of != "BA_1001" {
		t.Errorf("duplicate of %q, want BA_1001", of)
	}

	other := &Question{QuestionID: "BA_1003", Question: "반정규화의 목적은 무엇인가?"}
	if dup, _ := dedup.Observe(other); dup {
		t.Error("distinct question reported as duplicate")
	}

	if dedup.Count() != 2 {
		t.Errorf("Count() = %d, want 2", dedup.Count())
	}
}

func TestQuestionDedupIgnoresEmptyText(t *testing.T) {
	dedup := NewQuestionDedup()
	empty := &Question{QuestionID: "BA_1001", Question: "  \n"}
	if dup, _ := dedup.Observe(empty); dup {
		t.Error("empty text reported as duplicate")
	}
	if dup, _ := dedup.Observe(empty); dup {
		t.Error("repeated empty text reported as duplicate")
	}
}
