package examgen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// visualSubjectKeywords are the subject-area fragments eligible for diagram
// questions.
var visualSubjectKeywords = []string{
	"데이터 모델링",
	"프로세스 모델링 – 설계",
	"인터페이스 설계",
	"MSA 서비스 설계",
	"화면정의",
}

// erdScenario is a canned ERD question domain.
type erdScenario struct {
	Domain   string
	Entities []Entity
}

var erdScenarios = []erdScenario{
	{
		Domain: "도서관 관리 시스템",
		Entities: []Entity{
			{Name: "회원", Attributes: []string{"회원ID", "이름", "이메일"}},
			{Name: "도서", Attributes: []string{"도서ID", "제목", "저자"}},
			{Name: "대출", Attributes: []string{"대출ID", "대출일", "반납일"}},
			{Name: "카테고리", Attributes: []string{"카테고리ID", "분류명"}},
		},
	},
	{
		Domain: "병원 관리 시스템",
		Entities: []Entity{
			{Name: "환자", Attributes: []string{"환자ID", "이름", "주민번호"}},
			{Name: "의사", Attributes: []string{"의사ID", "이름", "전문과목"}},
			{Name: "진료", Attributes: []string{"진료ID", "진료일시", "증상"}},
			{Name: "처방전", Attributes: []string{"처방전ID", "약품명", "용량"}},
		},
	},
}

var tableScenarios = []TableScenario{
	{
		Title:   "직원 정보 테이블",
		Columns: []string{"직원ID", "이름", "부서코드", "부서명", "프로젝트코드", "프로젝트명"},
		Rows: [][]string{
			{"E001", "김철수", "D01", "IT개발팀", "P001,P002", "웹사이트개발,모바일앱"},
			{"E002", "이영희", "D02", "마케팅팀", "P003", "광고캠페인"},
			{"E003", "박민수", "D01", "IT개발팀", "P001", "웹사이트개발"},
		},
		ViolationType: "1NF",
	},
}

type umlScenario struct {
	Domain  string
	Classes []UMLClass
}

var umlScenarios = []umlScenario{
	{
		Domain: "결제 시스템",
		Classes: []UMLClass{
			{
				Name:       "PaymentProcessor",
				Attributes: []string{"amount", "currency"},
				Methods:    []string{"processPayment()", "validatePayment()"},
			},
			{
				Name:       "CreditCardPayment",
				Attributes: []string{"cardNumber", "expiryDate"},
				Methods:    []string{"authorize()", "charge()"},
			},
		},
	},
}

var orderFlowSteps = []FlowStep{
	{Type: "start", Text: "주문 접수"},
	{Type: "process", Text: "재고 확인"},
	{Type: "decision", Text: "재고 충분?"},
	{Type: "process", Text: "결제 처리"},
	{Type: "end", Text: "주문 완료"},
}

var registrationMockup = []UIComponent{
	{Type: "label", X: 2, Y: 5.5, Width: 1, Height: 0.3, Text: "사용자 등록"},
	{Type: "input", X: 3, Y: 4.8, Width: 3, Height: 0.5, Text: "이름을 입력하세요"},
	{Type: "button", X: 3, Y: 2.5, Width: 1.5, Height: 0.5, Text: "등록"},
}

// VisualGenerator builds complete visual questions from the template
// scenarios above, rendering the attached diagram through a DiagramRenderer.
type VisualGenerator struct {
	renderer *DiagramRenderer
	rng      *rand.Rand
}

// NewVisualGenerator creates a visual question generator.
func NewVisualGenerator(rng *rand.Rand) *VisualGenerator {
	return &VisualGenerator{renderer: NewDiagramRenderer(), rng: rng}
}

// EligibleSubject reports whether a subject area can carry a diagram.
func EligibleSubject(subjectArea string) bool {
	for _, kw := range visualSubjectKeywords {
		if strings.Contains(subjectArea, kw) {
			return true
		}
	}
	return false
}

// GenerateVisualQuestion builds a diagram question for the slot, routed by
// subject-area keywords. Rendering failures return an error so the caller can
// fall back to a text question.
func (vg *VisualGenerator) GenerateVisualQuestion(slot Slot) (*Question, error) {
	q, err := vg.routeVisual(slot)
	if err != nil {
		return nil, err
	}
	// The templates name a representative subject; the slot is authoritative.
	q.SubjectArea = slot.SubjectArea
	return q, nil
}

func (vg *VisualGenerator) routeVisual(slot Slot) (*Question, error) {
	switch {
	case strings.Contains(slot.SubjectArea, "논리데이터"):
		return vg.erdQuestion(slot.Difficulty)
	case strings.Contains(slot.SubjectArea, "물리데이터"):
		return vg.tableQuestion(slot.Difficulty)
	case strings.Contains(slot.SubjectArea, "데이터 모델링"):
		if vg.rng.Intn(2) == 0 {
			return vg.erdQuestion(slot.Difficulty)
		}
		return vg.tableQuestion(slot.Difficulty)
	case strings.Contains(slot.SubjectArea, "프로세스 모델링 – 설계"):
		if strings.Contains(slot.SubjectArea, "MSA") {
			return vg.umlQuestion(slot.Difficulty)
		}
		return vg.flowchartQuestion(slot.Difficulty)
	case strings.Contains(slot.SubjectArea, "인터페이스") || strings.Contains(slot.SubjectArea, "화면정의"):
		return vg.uiQuestion(slot.Difficulty)
	default:
		return vg.erdQuestion(slot.Difficulty)
	}
}

func (vg *VisualGenerator) erdQuestion(difficulty Difficulty) (*Question, error) {
	scenario := erdScenarios[vg.rng.Intn(len(erdScenarios))]
	image, err := vg.renderer.ERDDiagram(scenario.Entities)
	if err != nil {
		return nil, fmt.Errorf("failed to render ERD: %w", err)
	}

	return &Question{
		QuestionID:   generateQuestionID("ERD"),
		QuestionType: TypeMultipleChoice,
		Difficulty:   difficulty,
		Title:        scenario.Domain + " ERD 분석",
		Scenario:     fmt.Sprintf("다음은 %s의 ERD입니다.", scenario.Domain),
		Question:     "이 ERD에서 엔티티 간의 관계를 올바르게 설명한 것은?",
		Choices: []string{
			"① 모든 엔티티가 1:1 관계로 연결됨",
			"② 중심 엔티티를 통한 간접 관계 구조",
			"③ 모든 엔티티가 독립적으로 존재",
			"④ 순환 참조 구조로 설계됨",
			"⑤ 계층적 상속 구조로 구성됨",
		},
		CorrectAnswer: "②",
		Explanation:   "ERD에서 중심이 되는 엔티티(대출, 진료 등)를 통해 다른 엔티티들이 간접적으로 연결되는 구조입니다.",
		Points:        PointsForDifficulty(difficulty),
		GeneratedAt:   time.Now(),
		VisualType:    VisualERD,
		VisualImage:   image,
	}, nil
}

func (vg *VisualGenerator) tableQuestion(difficulty Difficulty) (*Question, error) {
	scenario := tableScenarios[vg.rng.Intn(len(tableScenarios))]
	image, err := vg.renderer.TableDiagram(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to render table: %w", err)
	}

	return &Question{
		QuestionID:   generateQuestionID("TABLE"),
		QuestionType: TypeEssay,
		Difficulty:   difficulty,
		Title:        scenario.Title + " 정규화",
		Scenario:     fmt.Sprintf("다음은 정규화가 필요한 %s입니다.", scenario.Title),
		Question:     "이 테이블이 위반하는 정규형을 식별하고 정규화 방안을 제시하세요.",
		ModelAnswer:  fmt.Sprintf("%s 위반. 복수 값을 가진 컬럼을 별도 테이블로 분리하여 정규화 필요.", scenario.ViolationType),
		GradingCriteria: []string{
			"정규형 위반 정확히 식별",
			"정규화 방안 제시",
			"분리된 테이블 구조 설명",
		},
		Explanation: "정규화를 통해 데이터 중복을 제거하고 무결성을 확보할 수 있습니다.",
		Points:      PointsForDifficulty(difficulty),
		GeneratedAt: time.Now(),
		VisualType:  VisualTable,
		VisualImage: image,
	}, nil
}

func (vg *VisualGenerator) umlQuestion(difficulty Difficulty) (*Question, error) {
	scenario := umlScenarios[vg.rng.Intn(len(umlScenarios))]
	image, err := vg.renderer.UMLDiagram(scenario.Classes)
	if err != nil {
		return nil, fmt.Errorf("failed to render UML: %w", err)
	}

	return &Question{
		QuestionID:         generateQuestionID("UML"),
		QuestionType:       TypeShortAnswer,
		Difficulty:         difficulty,
		Title:              scenario.Domain + " UML 설계",
		Scenario:           fmt.Sprintf("다음은 %s의 UML 클래스 다이어그램입니다.", scenario.Domain),
		Question:           "이 UML 다이어그램에서 사용된 디자인 패턴은?",
		CorrectAnswer:      "Strategy",
		AlternativeAnswers: []string{"Strategy Pattern", "전략 패턴"},
		Explanation:        "Strategy 패턴을 사용하여 결제 방식을 동적으로 변경할 수 있도록 설계되었습니다.",
		Points:             PointsForDifficulty(difficulty),
		GeneratedAt:        time.Now(),
		VisualType:         VisualUML,
		VisualImage:        image,
	}, nil
}

// flowchartQuestion always ships as multiple-choice; the template carries a
// fixed choice set.
func (vg *VisualGenerator) flowchartQuestion(difficulty Difficulty) (*Question, error) {
	image, err := vg.renderer.Flowchart(orderFlowSteps)
	if err != nil {
		return nil, fmt.Errorf("failed to render flowchart: %w", err)
	}

	q := &Question{
		QuestionID:   generateQuestionID("FLOW"),
		QuestionType: TypeMultipleChoice,
		Difficulty:   difficulty,
		Title:        "주문 처리 프로세스",
		Scenario:     "다음은 주문 처리 프로세스 플로우차트입니다.",
		Question:     "이 프로세스에서 첫 번째 의사결정 단계는?",
		Choices: []string{
			"① 주문 접수",
			"② 재고 확인",
			"③ 재고 충분?",
			"④ 결제 처리",
			"⑤ 주문 완료",
		},
		CorrectAnswer: "③",
		Explanation:   "의사결정 단계는 다이아몬드 모양으로 표시되며, 이 프로세스에서는 \"재고 충분?\" 단계가 첫 번째 의사결정 포인트입니다.",
		Points:        PointsForDifficulty(difficulty),
		GeneratedAt:   time.Now(),
		VisualType:    VisualFlowchart,
		VisualImage:   image,
	}
	return q, nil
}

func (vg *VisualGenerator) uiQuestion(difficulty Difficulty) (*Question, error) {
	image, err := vg.renderer.UIMockup(registrationMockup)
	if err != nil {
		return nil, fmt.Errorf("failed to render mockup: %w", err)
	}

	q := &Question{
		QuestionID:   generateQuestionID("UI"),
		QuestionType: TypeMultipleChoice,
		Difficulty:   difficulty,
		Title:        "사용자 등록 화면 설계",
		Scenario:     "다음은 사용자 등록 화면 목업입니다.",
		Question:     "이 화면에서 개선이 필요한 UI 요소는?",
		Choices: []string{
			"① 이름 입력 필드가 너무 작음",
			"② 비밀번호 확인 필드 누락",
			"③ 등록 버튼이 너무 작음",
			"④ 이메일 형식 검증 표시 없음",
			"⑤ 모든 요소가 적절함",
		},
		CorrectAnswer: "②",
		Explanation:   "사용자 등록 화면에서는 비밀번호 확인 필드가 반드시 필요합니다. 비밀번호 입력 실수를 방지하기 위한 필수 요소입니다.",
		Points:        PointsForDifficulty(difficulty),
		GeneratedAt:   time.Now(),
		VisualType:    VisualUIMockup,
		VisualImage:   image,
	}
	return q, nil
}
