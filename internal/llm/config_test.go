package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYGLASS_LLM_PROVIDER", "openai")
	t.Setenv("STUDYGLASS_OPENAI_API_KEY", "sk-test")
	t.Setenv("STUDYGLASS_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	require.NoError(t, cfg.Validate())
}

func TestValidateMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	require.Error(t, cfg.Validate())
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "oracle"
	require.Error(t, cfg.Validate())
}

func TestDiscoverConfigPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "gemini", cfg.Provider, "gemini wins when multiple keys are set")
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "custom-model-id", resolveModel("custom-model-id", anthropicModels))
}
