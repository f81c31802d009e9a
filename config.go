package examgen

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the Azure OpenAI connection settings and application defaults,
// read once from the environment at startup.
type Config struct {
	Endpoint       string
	APIKey         string
	DeploymentName string
	APIVersion     string

	DefaultQuestionCount int
	Debug                bool
}

// Default percentage splits applied when the caller does not override them.
var (
	DefaultTypeRatios       = TypeRatios{MultipleChoice: 60, ShortAnswer: 25, Essay: 15}
	DefaultDifficultyRatios = DifficultyRatios{Easy: 50, Medium: 35, Hard: 15}
)

// DefaultVisualRatio is the default percentage of eligible questions that
// receive an attached diagram.
const DefaultVisualRatio = 30

// SubjectAreas is the canonical list of examinable subject areas.
var SubjectAreas = []string{
	"프로세스 모델링 – 설계 > 단위테스트 케이스 설계",
	"프로세스 모델링 – 분석 > 요구사항 정의",
	"프로세스 모델링 – 분석 > 인터페이스 정의",
	"프로세스 모델링 – 분석 > 개발방법론",
	"프로세스 모델링 – 설계 > 인터페이스 설계",
	"프로세스 모델링 – 설계 > MSA 서비스 설계",
	"프로세스 모델링 – 분석 > 화면정의",
	"데이터 모델링 – 데이터 모델링 > 물리데이터 모델링",
	"데이터 모델링 – 데이터 모델링 > 논리데이터 모델링",
	"데이터 모델링 – 데이터 표준화 > 데이터 표준관리",
	"데이터 모델링 – 데이터 표준화 > 데이터 표준화",
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is merged in when present; a missing file is not an error.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Endpoint:             os.Getenv("OPENAI_ENDPOINT"),
		APIKey:               os.Getenv("OPENAI_KEY"),
		DeploymentName:       os.Getenv("CHAT_MODEL3"),
		APIVersion:           os.Getenv("AZURE_OPENAI_API_VERSION"),
		DefaultQuestionCount: 50,
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-02-15-preview"
	}
	if v := os.Getenv("DEFAULT_QUESTION_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultQuestionCount = n
		}
	}
	cfg.Debug = strings.EqualFold(os.Getenv("DEBUG"), "true")
	return cfg
}

// IsConfigured reports whether the Azure OpenAI settings are complete.
// Generation is disabled without them; the rest of the application still runs.
func (c Config) IsConfigured() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.DeploymentName != ""
}

// EnvTemplate returns a starter .env file for the settings above.
func EnvTemplate() string {
	return `# Azure OpenAI 설정
OPENAI_ENDPOINT=https://your-resource-name.openai.azure.com/
OPENAI_KEY=your-azure-openai-api-key-here
CHAT_MODEL3=your-deployment-name

# API 버전 (선택사항)
AZURE_OPENAI_API_VERSION=2024-02-15-preview

# 기타 설정 (선택사항)
DEFAULT_QUESTION_COUNT=100

# 디버그 모드 (개발용)
DEBUG=False
`
}
