package utils

import (
	"esd/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordModerationFlagsBlockedContent(t *testing.T) {
	verdict := keywordModeration("this is pure HARASSment of a junior")
	assert.True(t, verdict.Flagged)
	assert.Equal(t, "keyword-fallback", verdict.Source)
	assert.Contains(t, verdict.Reason, "harass")
}

func TestKeywordModerationPassesCleanContent(t *testing.T) {
	verdict := keywordModeration("Does anyone have notes for tomorrow's lecture?")
	assert.False(t, verdict.Flagged)
	assert.Equal(t, "keyword-fallback", verdict.Source)
}

func TestModerateContentFallsBackWithoutModelKey(t *testing.T) {
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()

	// Unloaded config must not crash moderation, it degrades to the blocklist
	config.AppConfig = nil
	verdict := ModerateContent("selling drugs for sale near campus")
	assert.True(t, verdict.Flagged)
	assert.Equal(t, "keyword-fallback", verdict.Source)

	config.AppConfig = &config.Config{GeminiApiKey: ""}
	verdict = ModerateContent("selling drugs for sale near campus")
	assert.True(t, verdict.Flagged)
	assert.Equal(t, "keyword-fallback", verdict.Source)
}

func TestExtractJSONStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"flagged\": false}\n```"
	assert.Equal(t, `{"flagged": false}`, extractJSON(fenced))

	bare := `{"flagged": true}`
	assert.Equal(t, bare, extractJSON(bare))
}
