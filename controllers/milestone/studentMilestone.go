package milestoneController

import (
	"encoding/json"
	"esd/database"
	"esd/middleware"
	"esd/models"
	"esd/services"
	"esd/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// loadPublishedMilestone fetches a milestone a student is allowed to act on.
func loadPublishedMilestone(milestoneID int) (*models.Milestone, error) {
	var milestone models.Milestone
	err := database.Database.Db.
		Where("id = ? AND status = ? AND is_deleted = ?", milestoneID, models.MilestoneStatusPublished, false).
		First(&milestone).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// StartMilestone opens a progress record for the caller. Idempotent: an
// existing record is returned unchanged.
func StartMilestone(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	milestoneID, err := c.ParamsInt("milestoneId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid milestone id!", nil)
	}

	milestone, err := loadPublishedMilestone(milestoneID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	if time.Now().Before(milestone.StartDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Milestone has not opened yet!", nil)
	}

	db := database.Database.Db

	var existing models.StudentMilestone
	if err := db.Where("student_id = ? AND milestone_id = ? AND is_deleted = ?", user.ID, milestone.ID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Milestone already started.", existing)
	}

	record := models.StudentMilestone{
		StudentID:   user.ID,
		MilestoneID: milestone.ID,
		Status:      models.ProgressInProgress,
		Attempts:    1,
	}
	if milestone.IsTimed() {
		startedAt := time.Now()
		record.QuizStartedAt = &startedAt
	}

	if err := db.Create(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start milestone!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Milestone started.", record)
}

// SubmitAssignment stores a multipart submission. Files are persisted
// first; if any single file fails the whole submission is aborted and
// nothing is recorded.
func SubmitAssignment(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	milestoneID, err := c.ParamsInt("milestoneId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid milestone id!", nil)
	}

	milestone, err := loadPublishedMilestone(milestoneID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	if time.Now().After(milestone.EndDate) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission window has closed!", nil)
	}

	db := database.Database.Db

	var record models.StudentMilestone
	if err := db.Where("student_id = ? AND milestone_id = ? AND is_deleted = ?", user.ID, milestone.ID, false).
		First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Start the milestone before submitting!", nil)
	}

	if record.Status == models.ProgressCompleted || record.Status == models.ProgressFailed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This milestone has already been finalised!", nil)
	}

	var reqs models.SubmissionRequirements
	if len(milestone.Requirements) > 0 {
		json.Unmarshal(milestone.Requirements, &reqs)
	}

	text := c.FormValue("text")

	form, _ := c.MultipartForm()
	var fileURLs []string
	if form != nil {
		files := form.File["files"]
		if reqs.MaxFiles > 0 && len(files) > reqs.MaxFiles {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Too many files for this milestone!", nil)
		}
		for _, fh := range files {
			if !utils.IsAllowedFileType(fh.Filename, reqs.AllowedFileTypes) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File type not allowed: "+fh.Filename, nil)
			}
			if reqs.MaxFileSizeMB > 0 && fh.Size > int64(reqs.MaxFileSizeMB)*1024*1024 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File too large: "+fh.Filename, nil)
			}
		}

		stored := make([]string, 0, len(files))
		for _, fh := range files {
			id, err := utils.SaveUploadedFile(fh, "submissions")
			if err != nil {
				// A single failed upload aborts the whole submission
				for _, s := range stored {
					utils.DeleteStoredFile(s)
				}
				return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "File upload failed. Submission aborted.", nil)
			}
			stored = append(stored, id)
		}
		for _, s := range stored {
			fileURLs = append(fileURLs, utils.GetFileURL(s))
		}
	}

	if len(fileURLs) == 0 && strings.TrimSpace(text) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission must contain files or text!", nil)
	}

	var submissions []models.Submission
	if len(record.Submissions) > 0 {
		json.Unmarshal(record.Submissions, &submissions)
	}
	now := time.Now()
	submissions = append(submissions, models.Submission{
		ID:          uuid.NewString(),
		Files:       fileURLs,
		Text:        text,
		SubmittedAt: now,
	})
	raw, _ := json.Marshal(submissions)
	record.Submissions = datatypes.JSON(raw)
	record.Status = models.ProgressSubmitted
	record.SubmittedAt = &now
	record.Attempts++

	if err := db.Save(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record submission!", nil)
	}

	services.EmitToAdmins(services.EventAssignmentSubmitted, fiber.Map{
		"studentId":   user.ID,
		"studentName": user.Name,
		"milestoneId": milestone.ID,
		"milestone":   milestone.Name,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission recorded.", record)
}

// GradeObjectiveAnswers matches answers to questions by embedded id and
// auto-grades objective types only. Free-text answers are marked for human
// review and contribute nothing to the advisory score.
func GradeObjectiveAnswers(questions []models.Question, answers map[string]string) ([]models.GradedAnswer, float64, float64) {
	var graded []models.GradedAnswer
	var score, maxScore float64

	for _, q := range questions {
		given, answered := answers[q.ID]
		ga := models.GradedAnswer{
			QuestionID:  q.ID,
			GivenAnswer: given,
		}

		switch q.Type {
		case models.QuestionTypeMultipleChoice, models.QuestionTypeTrueFalse:
			maxScore += q.Points
			if answered && strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(q.CorrectAnswer)) {
				ga.IsCorrect = true
				ga.AwardedPoints = q.Points
				score += q.Points
			}
		default:
			ga.NeedsReview = true
		}

		graded = append(graded, ga)
	}

	return graded, score, maxScore
}

// SubmitQuizAnswers submits a timed quiz/exam. Past the time limit the
// record is failed without grading. Auto-grading is advisory only: status
// becomes submitted, never completed, so a human always confirms.
func SubmitQuizAnswers(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	milestoneID, err := c.ParamsInt("milestoneId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid milestone id!", nil)
	}

	milestone, err := loadPublishedMilestone(milestoneID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Milestone not found!", nil)
	}

	if milestone.Type != models.MilestoneTypeQuiz && milestone.Type != models.MilestoneTypeExam {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Milestone is not a quiz or exam!", nil)
	}

	db := database.Database.Db

	var record models.StudentMilestone
	if err := db.Where("student_id = ? AND milestone_id = ? AND is_deleted = ?", user.ID, milestone.ID, false).
		First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Start the quiz before submitting!", nil)
	}

	if record.Status != models.ProgressInProgress {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz has already been submitted!", nil)
	}

	// Time limit enforcement: a late submission fails with no credit
	if milestone.IsTimed() && record.QuizStartedAt != nil {
		deadline := record.QuizStartedAt.Add(time.Duration(milestone.Duration) * time.Minute)
		if time.Now().After(deadline) {
			record.Status = models.ProgressFailed
			now := time.Now()
			record.SubmittedAt = &now
			db.Save(&record)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Time limit exceeded. Quiz marked as failed.", record)
		}
	}

	reqData := new(struct {
		Answers []struct {
			QuestionID string `json:"questionId"`
			Answer     string `json:"answer"`
		} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var questions []models.Question
	if len(milestone.Questions) > 0 {
		json.Unmarshal(milestone.Questions, &questions)
	}

	answerMap := make(map[string]string, len(reqData.Answers))
	for _, a := range reqData.Answers {
		answerMap[a.QuestionID] = a.Answer
	}

	graded, score, maxScore := GradeObjectiveAnswers(questions, answerMap)

	rawAnswers, _ := json.Marshal(graded)
	record.Answers = datatypes.JSON(rawAnswers)
	record.AutoGradedScore = &score
	record.AutoGradedPercentage = utils.RoundPercentage(score, maxScore)

	now := time.Now()
	record.Status = models.ProgressSubmitted
	record.SubmittedAt = &now

	if err := db.Save(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record quiz submission!", nil)
	}

	services.EmitToAdmins(services.EventQuizSubmitted, fiber.Map{
		"studentId":   user.ID,
		"milestoneId": milestone.ID,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted. Awaiting review.", record)
}

// GradeSubmission finalizes a record with a human grade. Staff only.
func GradeSubmission(c *fiber.Ctx) error {
	grader := c.Locals("currentUser").(*models.User)

	recordID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid record id!", nil)
	}

	reqData := new(struct {
		Score    float64 `json:"score"`
		MaxScore float64 `json:"maxScore"`
		Grade    string  `json:"grade"`
		Feedback string  `json:"feedback"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.MaxScore < 0 || reqData.Score < 0 || (reqData.MaxScore > 0 && reqData.Score > reqData.MaxScore) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Score must be between 0 and max score!", nil)
	}

	db := database.Database.Db

	var record models.StudentMilestone
	if err := db.Where("id = ? AND is_deleted = ?", recordID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Progress record not found!", nil)
	}

	if record.Status != models.ProgressSubmitted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only submitted records can be graded!", nil)
	}

	now := time.Now()
	record.Score = &reqData.Score
	record.MaxScore = &reqData.MaxScore
	record.Percentage = utils.RoundPercentage(reqData.Score, reqData.MaxScore)
	record.Grade = reqData.Grade
	record.Feedback = reqData.Feedback
	record.GradedBy = &grader.ID
	record.GradedAt = &now
	record.Status = models.ProgressCompleted

	if err := db.Save(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	services.EmitToUser(record.StudentID, services.EventAssignmentGraded, fiber.Map{
		"recordId":    record.ID,
		"milestoneId": record.MilestoneID,
		"grade":       record.Grade,
	})

	go func(record models.StudentMilestone) {
		var student models.User
		var milestone models.Milestone
		db := database.Database.Db
		if err := db.Select("name, email").First(&student, record.StudentID).Error; err != nil {
			return
		}
		if err := db.Select("name").First(&milestone, record.MilestoneID).Error; err != nil {
			return
		}
		utils.SendGradedEmail(student.Email, student.Name, milestone.Name, record.Grade)
	}(record)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded.", record)
}

// GetStudentProgress returns a student's rows for one chain plus derived
// per-status counts and the mean percentage across graded rows.
func GetStudentProgress(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, err.Error(), nil)
	}

	chainID, err := c.ParamsInt("chainId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	// Staff may inspect any student; students only themselves
	studentID := user.ID
	if requested := c.QueryInt("studentId"); requested > 0 {
		if !user.IsStaff() && user.Role != models.RoleMentor {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not allowed to view other students' progress!", nil)
		}
		studentID = uint(requested)
	}

	db := database.Database.Db

	var rows []models.StudentMilestone
	if err := db.
		Joins("JOIN milestones ON milestones.id = student_milestones.milestone_id").
		Where("milestones.chain_id = ? AND student_milestones.student_id = ? AND student_milestones.is_deleted = ?",
			chainID, studentID, false).
		Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	counts := map[string]int{}
	var pctSum float64
	var pctCount int
	for _, row := range rows {
		counts[row.Status]++
		if row.Percentage != nil {
			pctSum += *row.Percentage
			pctCount++
		}
	}

	var meanPercentage *float64
	if pctCount > 0 {
		mean := pctSum / float64(pctCount)
		meanPercentage = &mean
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched.", fiber.Map{
		"records":        rows,
		"statusCounts":   counts,
		"meanPercentage": meanPercentage,
	})
}

// ListPendingSubmissions lists submitted records across a chain for staff
// review queues.
func ListPendingSubmissions(c *fiber.Ctx) error {
	chainID, err := c.ParamsInt("chainId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chain id!", nil)
	}

	var rows []models.StudentMilestone
	if err := database.Database.Db.
		Joins("JOIN milestones ON milestones.id = student_milestones.milestone_id").
		Where("milestones.chain_id = ? AND student_milestones.status = ? AND student_milestones.is_deleted = ?",
			chainID, models.ProgressSubmitted, false).
		Order("student_milestones.submitted_at asc").
		Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending submissions fetched.", rows)
}
