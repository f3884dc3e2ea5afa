package ai

import "strings"

// Provider identifies which LLM backend a request goes to.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderOllama    Provider = "ollama"
)

// DetectProvider classifies an API key by its shape. Pure string
// classification; unknown shapes default to OpenAI.
func DetectProvider(apiKey string) Provider {
	switch {
	case strings.HasPrefix(apiKey, "sk-ant-"):
		return ProviderAnthropic
	case strings.HasPrefix(apiKey, "sk-"):
		return ProviderOpenAI
	case strings.HasPrefix(apiKey, "AIza"):
		return ProviderGoogle
	case strings.HasPrefix(apiKey, "ollama"):
		return ProviderOllama
	default:
		return ProviderOpenAI
	}
}
