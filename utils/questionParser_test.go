package utils

import (
	"esd/config"
	"esd/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExamText = `
1. What is the capital of France?
a) London
b) Paris
c) Berlin
d) Madrid
Answer: b

2. True or false: water boils at 100 degrees Celsius at sea level.
Answer: true

3. Explain the difference between a process
and a thread.
`

func TestParseQuestionsHeuristic(t *testing.T) {
	questions := parseQuestionsHeuristic(sampleExamText)
	require.Len(t, questions, 3)

	q1 := questions[0]
	assert.Equal(t, "What is the capital of France?", q1.Text)
	assert.Equal(t, models.QuestionTypeMultipleChoice, q1.Type)
	assert.Equal(t, []string{"London", "Paris", "Berlin", "Madrid"}, q1.Options)
	assert.Equal(t, "b", q1.CorrectAnswer)
	assert.Equal(t, 1.0, q1.Points)
	assert.NotEmpty(t, q1.ID)

	q2 := questions[1]
	assert.Equal(t, models.QuestionTypeTrueFalse, q2.Type)
	assert.Equal(t, "true", q2.CorrectAnswer)

	// Wrapped lines fold back into the question text
	q3 := questions[2]
	assert.Equal(t, models.QuestionTypeShortAnswer, q3.Type)
	assert.Equal(t, "Explain the difference between a process and a thread.", q3.Text)
	assert.Empty(t, q3.CorrectAnswer)
}

func TestParseQuestionsHeuristicNumberingVariants(t *testing.T) {
	text := "Q1. First question here?\n2) Second question here?\n3] Third question here?"

	questions := parseQuestionsHeuristic(text)
	require.Len(t, questions, 3)
	assert.Equal(t, "First question here?", questions[0].Text)
	assert.Equal(t, "Second question here?", questions[1].Text)
	assert.Equal(t, "Third question here?", questions[2].Text)
}

func TestParseQuestionsHeuristicIgnoresPreamble(t *testing.T) {
	text := "Midterm Exam\nAnswer all questions.\n\n1. Define recursion."

	questions := parseQuestionsHeuristic(text)
	require.Len(t, questions, 1)
	assert.Equal(t, "Define recursion.", questions[0].Text)
}

func TestParseQuestionsHeuristicEmptyInput(t *testing.T) {
	assert.Empty(t, parseQuestionsHeuristic(""))
	assert.Empty(t, parseQuestionsHeuristic("no numbered lines at all"))
}

func TestParseQuestionsFallsBackWithoutModelKey(t *testing.T) {
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()

	config.AppConfig = nil
	questions, source := ParseQuestions("1. Define recursion.")
	assert.Equal(t, "heuristic", source)
	require.Len(t, questions, 1)

	config.AppConfig = &config.Config{GeminiApiKey: ""}
	questions, source = ParseQuestions("1. Define recursion.")
	assert.Equal(t, "heuristic", source)
	require.Len(t, questions, 1)
}
