package wellbeing

import "strings"

// Strategy identifies what produces an analysis.
type Strategy string

const (
	StrategyLocal  Strategy = "local"
	StrategyOpenAI Strategy = "openai"
	StrategyGroq   Strategy = "groq"
)

// Provider names a remote provider a deployment may prefer.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
)

// ParseProvider maps a configured provider name; unknown names yield "".
func ParseProvider(raw string) Provider {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ProviderOpenAI):
		return ProviderOpenAI
	case string(ProviderGroq):
		return ProviderGroq
	default:
		return ""
	}
}

// ProviderConfig is the dispatcher input. Keys are reported as present or absent only.
type ProviderConfig struct {
	ForceMock    bool
	Preferred    Provider
	HasOpenAIKey bool
	HasGroqKey   bool
}

// SelectStrategy picks the strategy for cfg; the first matching rule wins.
func SelectStrategy(cfg ProviderConfig) Strategy {
	switch {
	case cfg.ForceMock:
		return StrategyLocal
	case cfg.Preferred == ProviderGroq && cfg.HasGroqKey:
		return StrategyGroq
	case cfg.Preferred == ProviderOpenAI && cfg.HasOpenAIKey:
		return StrategyOpenAI
	case cfg.HasGroqKey:
		return StrategyGroq
	case cfg.HasOpenAIKey:
		return StrategyOpenAI
	default:
		return StrategyLocal
	}
}

// Plan lists the strategies tried in order: the selected one, then the local fallback.
func Plan(cfg ProviderConfig) []Strategy {
	selected := SelectStrategy(cfg)
	if selected == StrategyLocal {
		return []Strategy{StrategyLocal}
	}
	return []Strategy{selected, StrategyLocal}
}

// IsRemote reports whether s calls out to a provider.
func (s Strategy) IsRemote() bool {
	return s == StrategyOpenAI || s == StrategyGroq
}
