package utils

import (
	"encoding/json"
	"esd/config"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ModerationResult is the structured verdict for a piece of user content.
type ModerationResult struct {
	Flagged bool   `json:"flagged"`
	Reason  string `json:"reason,omitempty"`
	Source  string `json:"source"` // model or keyword-fallback
}

// blockedKeywords is the conservative local fallback. Any model failure must
// degrade to this list, never fail open.
var blockedKeywords = []string{
	"abuse", "harass", "slur", "kill yourself", "kys", "hate speech",
	"racist", "sexist", "nude", "porn", "drugs for sale", "buy drugs",
	"ragging", "threat", "doxx", "suicide challenge",
}

type geminiRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ModerateContent classifies content as acceptable or flagged. It asks the
// generative model for a structured yes/no + reason and falls back to the
// keyword blocklist on any failure or malformed output.
func ModerateContent(content string) ModerationResult {
	if config.AppConfig == nil || config.AppConfig.GeminiApiKey == "" {
		return keywordModeration(content)
	}

	prompt := fmt.Sprintf(`You are a content moderator for a campus community platform.
Classify the following content. Respond with ONLY a JSON object of the form
{"flagged": true|false, "reason": "short reason"} and nothing else.
Flag content that is abusive, harassing, sexually explicit, discriminatory, or promotes self-harm or illegal activity.

Content:
%s`, content)

	text, err := callGenerativeModel(prompt)
	if err != nil {
		log.Printf("Moderation model call failed, using keyword fallback: %v", err)
		return keywordModeration(content)
	}

	var verdict struct {
		Flagged bool   `json:"flagged"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &verdict); err != nil {
		log.Printf("Moderation model returned malformed output, using keyword fallback: %v", err)
		return keywordModeration(content)
	}

	return ModerationResult{Flagged: verdict.Flagged, Reason: verdict.Reason, Source: "model"}
}

// keywordModeration is the local blocklist check.
func keywordModeration(content string) ModerationResult {
	lowered := strings.ToLower(content)
	for _, kw := range blockedKeywords {
		if strings.Contains(lowered, kw) {
			return ModerationResult{
				Flagged: true,
				Reason:  "Content matched blocked keyword: " + kw,
				Source:  "keyword-fallback",
			}
		}
	}
	return ModerationResult{Flagged: false, Source: "keyword-fallback"}
}

// callGenerativeModel posts a prompt to the configured model endpoint and
// returns the first candidate's text.
func callGenerativeModel(prompt string) (string, error) {
	var req geminiRequest
	req.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	req.Contents[0].Parts = make([]struct {
		Text string `json:"text"`
	}, 1)
	req.Contents[0].Parts[0].Text = prompt

	client := resty.New().SetTimeout(15 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", config.AppConfig.GeminiApiKey).
		SetBody(req).
		Post(config.AppConfig.GeminiApiUrl)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("model API error: %s", resp.String())
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSON trims markdown code fences the model sometimes wraps around
// its JSON output.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
