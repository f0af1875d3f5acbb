package config

// LLMConfig configures the hosted model behind the AI side features
// (document summarization, project analysis).
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// DefaultLLMConfig returns the shipped model defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:   "gemini-2.0-flash",
		Timeout: "60s",
	}
}
