package examgen

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// promptSourceLimit caps how much of the extracted source text is embedded in
// a prompt, in runes.
const promptSourceLimit = 4000

// QuestionMaker generates exam questions through an Azure OpenAI deployment.
// A nil client (incomplete configuration) makes every call fall back.
type QuestionMaker struct {
	client     *openai.Client
	deployment string
}

// NewQuestionMaker builds a question maker from the Azure settings. When the
// configuration is incomplete the maker still works but only ever produces
// fallback questions.
func NewQuestionMaker(cfg Config) *QuestionMaker {
	qm := &QuestionMaker{deployment: cfg.DeploymentName}
	if !cfg.IsConfigured() {
		return qm
	}

	azure := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	azure.APIVersion = cfg.APIVersion
	deployment := cfg.DeploymentName
	azure.AzureModelMapperFunc = func(model string) string {
		return deployment
	}
	qm.client = openai.NewClientWithConfig(azure)
	return qm
}

// Configured reports whether the maker has a usable API client.
func (qm *QuestionMaker) Configured() bool {
	return qm.client != nil
}

// GenerateQuestion produces one question for the slot. Any failure along the
// way (missing client, API error, unparsable response, structural problem)
// substitutes the static fallback question for the slot; the caller always
// gets a usable record.
func (qm *QuestionMaker) GenerateQuestion(ctx context.Context, slot Slot, source string, logger *GenerationLogger) *Question {
	q, err := qm.generate(ctx, slot, source, logger)
	if err != nil {
		VerboseLog("question generation failed (%s/%s/%s): %v", slot.Type, slot.SubjectArea, slot.Difficulty, err)
		if logger != nil {
			logger.LogFallback(slot, err)
		}
		return FallbackQuestion(slot)
	}
	return q
}

func (qm *QuestionMaker) generate(ctx context.Context, slot Slot, source string, logger *GenerationLogger) (*Question, error) {
	if qm.client == nil {
		return nil, fmt.Errorf("azure openai client not configured")
	}

	prompt := qm.buildPrompt(slot, source)
	if logger != nil {
		logger.LogLLMRequest("QuestionMaker", prompt)
	}

	resp, err := qm.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: qm.deployment,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "당신은 IT 교육 전문가이며 고품질 시험문제 출제 전문가입니다.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
			MaxTokens:   2000,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from deployment %s", qm.deployment)
	}

	content := resp.Choices[0].Message.Content
	if logger != nil {
		logger.LogLLMResponse("QuestionMaker", content)
	}

	q, err := ParseQuestionResponse(content)
	if err != nil {
		return nil, err
	}

	// The model restates these fields; the slot is authoritative.
	q.QuestionType = slot.Type
	q.SubjectArea = slot.SubjectArea
	q.Difficulty = slot.Difficulty
	q.QuestionID = generateQuestionID("BA")
	q.GeneratedAt = time.Now()

	if err := CheckQuestion(q); err != nil {
		return nil, fmt.Errorf("structural check failed: %w", err)
	}
	return q, nil
}

// ParseQuestionResponse extracts the JSON object from a model response (the
// slice between the first '{' and the last '}') and decodes it.
func ParseQuestionResponse(content string) (*Question, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var wire struct {
		QuestionType       string   `json:"question_type"`
		SubjectArea        string   `json:"subject_area"`
		Difficulty         string   `json:"difficulty"`
		Title              string   `json:"title"`
		Scenario           string   `json:"scenario"`
		Question           string   `json:"question"`
		Choices            []string `json:"choices"`
		CorrectAnswer      string   `json:"correct_answer"`
		AlternativeAnswers []string `json:"alternative_answers"`
		ModelAnswer        string   `json:"model_answer"`
		GradingCriteria    []string `json:"grading_criteria"`
		Explanation        string   `json:"explanation"`
		Points             string   `json:"points"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse question JSON: %w", err)
	}

	return &Question{
		QuestionType:       QuestionType(wire.QuestionType),
		SubjectArea:        wire.SubjectArea,
		Difficulty:         Difficulty(wire.Difficulty),
		Title:              wire.Title,
		Scenario:           wire.Scenario,
		Question:           wire.Question,
		Choices:            wire.Choices,
		CorrectAnswer:      wire.CorrectAnswer,
		AlternativeAnswers: wire.AlternativeAnswers,
		ModelAnswer:        wire.ModelAnswer,
		GradingCriteria:    wire.GradingCriteria,
		Explanation:        wire.Explanation,
		Points:             wire.Points,
	}, nil
}

func (qm *QuestionMaker) buildPrompt(slot Slot, source string) string {
	var sb strings.Builder

	sb.WriteString("당신은 Business Application 모델링 분야의 전문 출제자입니다.\n")
	sb.WriteString("다음 학습자료를 바탕으로 실무에 적용 가능한 고품질 문제를 생성해주세요.\n\n")
	sb.WriteString("**학습자료:**\n")
	sb.WriteString(truncateRunes(source, promptSourceLimit))
	sb.WriteString("\n\n**문제 요구사항:**\n")
	sb.WriteString(fmt.Sprintf("- 문제유형: %s\n", slot.Type))
	sb.WriteString(fmt.Sprintf("- 출제영역: %s\n", slot.SubjectArea))
	sb.WriteString(fmt.Sprintf("- 난이도: %s\n", slot.Difficulty))
	sb.WriteString("- 실무 적용 가능한 현실적 시나리오 기반\n")
	sb.WriteString("- 명확하고 정확한 정답과 해설 제공\n\n")

	switch slot.Type {
	case TypeMultipleChoice:
		sb.WriteString(`**선다형 문제 형식:**
- 5개의 선택지(① ~⑤) 제공
- 정답은 1개만 존재
- 각 선택지는 명확하게 구분되는 내용
- 헷갈리기 쉬운 오답 포함

**출력 형식 (JSON):**
{
    "question_type": "선다형",
    "subject_area": "출제영역",
    "difficulty": "난이도",
    "title": "문제 제목",
    "scenario": "문제 시나리오/배경",
    "question": "질문 내용",
    "choices": ["① 선택지1", "② 선택지2", "③ 선택지3", "④ 선택지4", "⑤ 선택지5"],
    "correct_answer": "정답 번호",
    "explanation": "정답 해설",
    "points": "배점"
}
`)
	case TypeShortAnswer:
		sb.WriteString(`**단답형 문제 형식:**
- 간단명료한 답안 요구
- 여러 정답 가능한 경우 모두 명시
- 채점 기준 명확히 제시

**출력 형식 (JSON):**
{
    "question_type": "단답형",
    "subject_area": "출제영역",
    "difficulty": "난이도",
    "title": "문제 제목",
    "scenario": "문제 시나리오/배경",
    "question": "질문 내용",
    "correct_answer": "정답",
    "alternative_answers": ["대안 정답1", "대안 정답2"],
    "explanation": "정답 해설",
    "points": "배점"
}
`)
	default:
		sb.WriteString(`**서술형 문제 형식:**
- 깊이 있는 이해와 분석 능력 평가
- 논리적 설명과 실무 적용 방안 요구
- 채점 기준과 모범답안 제시

**출력 형식 (JSON):**
{
    "question_type": "서술형",
    "subject_area": "출제영역",
    "difficulty": "난이도",
    "title": "문제 제목",
    "scenario": "문제 시나리오/배경",
    "question": "질문 내용",
    "model_answer": "모범 답안",
    "grading_criteria": ["채점 기준1", "채점 기준2", "채점 기준3"],
    "explanation": "문제 의도 및 해설",
    "points": "배점"
}
`)
	}

	return sb.String()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func generateQuestionID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, 1000+rand.Intn(9000))
}
