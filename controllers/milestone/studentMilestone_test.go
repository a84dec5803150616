package milestoneController

import (
	"esd/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeObjectiveAnswersScoresObjectiveTypes(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.QuestionTypeMultipleChoice, CorrectAnswer: "B", Points: 2},
		{ID: "q2", Type: models.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
		{ID: "q3", Type: models.QuestionTypeMultipleChoice, CorrectAnswer: "D", Points: 2},
	}
	answers := map[string]string{
		"q1": "b",     // case-insensitive match
		"q2": " true", // whitespace trimmed
		"q3": "A",     // wrong
	}

	graded, score, maxScore := GradeObjectiveAnswers(questions, answers)
	require.Len(t, graded, 3)

	assert.True(t, graded[0].IsCorrect)
	assert.Equal(t, 2.0, graded[0].AwardedPoints)
	assert.True(t, graded[1].IsCorrect)
	assert.False(t, graded[2].IsCorrect)
	assert.Equal(t, 0.0, graded[2].AwardedPoints)

	assert.Equal(t, 3.0, score)
	assert.Equal(t, 5.0, maxScore)
}

func TestGradeObjectiveAnswersFlagsFreeTextForReview(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.QuestionTypeShortAnswer, CorrectAnswer: "Berlin", Points: 3},
		{ID: "q2", Type: models.QuestionTypeEssay, Points: 10},
	}
	answers := map[string]string{
		"q1": "Berlin",
		"q2": "Long-form answer.",
	}

	graded, score, maxScore := GradeObjectiveAnswers(questions, answers)
	require.Len(t, graded, 2)

	// Free text never contributes to the advisory score, even when the
	// given answer matches exactly
	assert.True(t, graded[0].NeedsReview)
	assert.False(t, graded[0].IsCorrect)
	assert.True(t, graded[1].NeedsReview)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0.0, maxScore)
}

func TestGradeObjectiveAnswersUnansweredQuestions(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Type: models.QuestionTypeMultipleChoice, CorrectAnswer: "A", Points: 2},
		{ID: "q2", Type: models.QuestionTypeTrueFalse, CorrectAnswer: "false", Points: 1},
	}

	graded, score, maxScore := GradeObjectiveAnswers(questions, map[string]string{})
	require.Len(t, graded, 2)

	// Unanswered objective questions still count toward the max
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 3.0, maxScore)
	assert.False(t, graded[0].IsCorrect)
	assert.Empty(t, graded[0].GivenAnswer)
}
