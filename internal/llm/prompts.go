package llm

import (
	_ "embed"
	"strings"

	"wellbeing-backend/internal/shared/telemetry"
	"wellbeing-backend/internal/shared/util"
)

var (
	//go:embed prompts/wellbeing_v1.txt
	promptV1 string
)

// DefaultPromptVersion is used when no version is configured.
const DefaultPromptVersion = "v1"

const systemPrompt = "You are a helpful student wellbeing assistant. Always respond with valid JSON only."

// PromptTemplate returns the prompt template text and whether the version was recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "v1":
		return promptV1, true
	default:
		return promptV1, false
	}
}

// BuildMessages renders the system and user messages for one analysis.
func BuildMessages(promptVersion, userText string) []Message {
	version := strings.TrimSpace(promptVersion)
	if version == "" {
		version = DefaultPromptVersion
	}
	template, ok := PromptTemplate(version)
	if !ok {
		telemetry.Warn("llm.prompt_version_unknown", map[string]any{"version": version, "default": DefaultPromptVersion})
	}
	user := strings.NewReplacer("{{USER_INPUT}}", userText).Replace(template)
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}

// PromptHash returns a stable sha256 of the rendered messages.
func PromptHash(messages []Message) string {
	return util.SHA256Hex(promptString(messages))
}

func promptString(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}
