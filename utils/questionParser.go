package utils

import (
	"encoding/json"
	"esd/config"
	"esd/models"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	questionLineRe = regexp.MustCompile(`^(?:Q\.?\s*)?(\d+)[.)\]]\s*(.+)$`)
	optionLineRe   = regexp.MustCompile(`^\(?([a-dA-D])[.)\]]\s*(.+)$`)
	answerInlineRe = regexp.MustCompile(`(?i)^answer\s*[:=-]\s*(.+)$`)
)

// ParseQuestions extracts structured questions from free document text. It
// asks the generative model first and degrades to the heuristic line parser
// on failure or malformed output.
func ParseQuestions(text string) ([]models.Question, string) {
	if config.AppConfig == nil || config.AppConfig.GeminiApiKey == "" {
		return parseQuestionsHeuristic(text), "heuristic"
	}

	prompt := `Extract all questions from the following document text.
Respond with ONLY a JSON array, each element of the form
{"text": "...", "type": "multiple-choice"|"true-false"|"short-answer", "options": ["..."], "correctAnswer": "...", "points": 1}.
Omit options for non multiple-choice questions. Use an empty correctAnswer when the document does not state one.

Document:
` + text

	out, err := callGenerativeModel(prompt)
	if err != nil {
		log.Printf("Question parsing model call failed, using heuristic parser: %v", err)
		return parseQuestionsHeuristic(text), "heuristic"
	}

	var parsed []models.Question
	if err := json.Unmarshal([]byte(extractJSON(out)), &parsed); err != nil || len(parsed) == 0 {
		log.Printf("Question parsing model output malformed, using heuristic parser")
		return parseQuestionsHeuristic(text), "heuristic"
	}

	for i := range parsed {
		parsed[i].ID = uuid.NewString()
		if parsed[i].Points == 0 {
			parsed[i].Points = 1
		}
		if parsed[i].Type == "" {
			parsed[i].Type = models.QuestionTypeShortAnswer
		}
	}
	return parsed, "model"
}

// parseQuestionsHeuristic scans the text line by line: numbered lines open a
// question, option-letter lines collect choices, and an inline "Answer:"
// line closes the correct answer.
func parseQuestionsHeuristic(text string) []models.Question {
	var questions []models.Question
	var current *models.Question

	flush := func() {
		if current == nil {
			return
		}
		if len(current.Options) > 0 {
			current.Type = models.QuestionTypeMultipleChoice
		} else if isTrueFalse(current.Text) {
			current.Type = models.QuestionTypeTrueFalse
		} else {
			current.Type = models.QuestionTypeShortAnswer
		}
		questions = append(questions, *current)
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := questionLineRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &models.Question{
				ID:     uuid.NewString(),
				Text:   strings.TrimSpace(m[2]),
				Points: 1,
			}
			continue
		}

		if current == nil {
			continue
		}

		if m := optionLineRe.FindStringSubmatch(line); m != nil {
			current.Options = append(current.Options, strings.TrimSpace(m[2]))
			continue
		}

		if m := answerInlineRe.FindStringSubmatch(line); m != nil {
			current.CorrectAnswer = strings.TrimSpace(m[1])
			continue
		}

		// Continuation of the question text
		current.Text += " " + line
	}
	flush()

	return questions
}

func isTrueFalse(text string) bool {
	lowered := strings.ToLower(text)
	return strings.Contains(lowered, "true or false") || strings.Contains(lowered, "true/false")
}
