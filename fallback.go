package examgen

import "time"

// fallbackBodies holds the static replacement content substituted when the
// completion API is unavailable or returns an unparsable response.
var fallbackBodies = map[QuestionType]Question{
	TypeMultipleChoice: {
		Question: "다음 중 소프트웨어 개발 생명주기 모델이 아닌 것은?",
		Choices: []string{
			"① 폭포수 모델",
			"② 나선형 모델",
			"③ 애자일 모델",
			"④ V 모델",
			"⑤ 관계형 모델",
		},
		CorrectAnswer: "⑤",
		Explanation:   "관계형 모델은 데이터베이스 설계 모델이며, 소프트웨어 개발 생명주기 모델이 아닙니다.",
	},
	TypeShortAnswer: {
		Question:      "요구사항 분석 단계에서 이해관계자의 요구사항을 수집하고 분석하는 과정을 무엇이라고 하는가?",
		CorrectAnswer: "요구사항 도출",
		Explanation:   "요구사항 도출(Requirements Elicitation)은 이해관계자로부터 요구사항을 수집하고 명확화하는 과정입니다.",
	},
	TypeEssay: {
		Question:    "애자일 개발방법론의 특징과 장단점에 대해 서술하시오.",
		ModelAnswer: "애자일 개발방법론은 빠른 반복과 지속적인 피드백을 통해 소프트웨어를 개발하는 방법론입니다. 짧은 주기의 반복 개발, 변화에 대한 유연한 대응, 고객과의 지속적인 협업이 핵심입니다.",
		GradingCriteria: []string{
			"애자일의 핵심 특징 설명",
			"장점 2개 이상 서술",
			"단점 1개 이상 서술",
		},
	},
}

// FallbackQuestion returns the static replacement question for a slot.
func FallbackQuestion(slot Slot) *Question {
	body, ok := fallbackBodies[slot.Type]
	if !ok {
		body = fallbackBodies[TypeMultipleChoice]
	}

	q := body
	q.QuestionID = generateQuestionID("FALLBACK")
	q.QuestionType = slot.Type
	q.SubjectArea = slot.SubjectArea
	q.Difficulty = slot.Difficulty
	q.Title = string(slot.Type) + " 문제"
	q.Scenario = "일반적인 업무 상황"
	q.Points = PointsForDifficulty(slot.Difficulty)
	q.GeneratedAt = time.Now()
	return &q
}
