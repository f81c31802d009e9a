package examgen

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_ENDPOINT", "")
	t.Setenv("OPENAI_KEY", "")
	t.Setenv("CHAT_MODEL3", "")
	t.Setenv("AZURE_OPENAI_API_VERSION", "")
	t.Setenv("DEFAULT_QUESTION_COUNT", "")
	t.Setenv("DEBUG", "")

	cfg := LoadConfig()
	if cfg.IsConfigured() {
		t.Error("empty environment reports configured")
	}
	if cfg.APIVersion != "2024-02-15-preview" {
		t.Errorf("api version = %q, want default", cfg.APIVersion)
	}
	if cfg.DefaultQuestionCount != 50 {
		t.Errorf("default question count = %d, want 50", cfg.DefaultQuestionCount)
	}
	if cfg.Debug {
		t.Error("debug enabled by default")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_ENDPOINT", "https://example.openai.azure.com/")
	t.Setenv("OPENAI_KEY", "test-key")
	t.Setenv("CHAT_MODEL3", "gpt-deployment")
	t.Setenv("AZURE_OPENAI_API_VERSION", "2024-06-01")
	t.Setenv("DEFAULT_QUESTION_COUNT", "25")
	t.Setenv("DEBUG", "True")

	cfg := LoadConfig()
	if !cfg.IsConfigured() {
		t.Error("complete environment reports unconfigured")
	}
	if cfg.DeploymentName != "gpt-deployment" {
		t.Errorf("deployment = %q", cfg.DeploymentName)
	}
	if cfg.APIVersion != "2024-06-01" {
		t.Errorf("api version = %q", cfg.APIVersion)
	}
	if cfg.DefaultQuestionCount != 25 {
		t.Errorf("default question count = %d, want 25", cfg.DefaultQuestionCount)
	}
	if !cfg.Debug {
		t.Error("DEBUG=True not honored")
	}
}

func TestLoadConfigRejectsBadCount(t *testing.T) {
	t.Setenv("DEFAULT_QUESTION_COUNT", "zero")
	if cfg := LoadConfig(); cfg.DefaultQuestionCount != 50 {
		t.Errorf("bad count not ignored: %d", cfg.DefaultQuestionCount)
	}

	t.Setenv("DEFAULT_QUESTION_COUNT", "-5")
	if cfg := LoadConfig(); cfg.DefaultQuestionCount != 50 {
		t.Errorf("negative count not ignored: %d", cfg.DefaultQuestionCount)
	}
}
