package questionParserController

import (
	"esd/middleware"
	"esd/utils"
	"io"

	"github.com/gofiber/fiber/v2"
)

const maxParseBytes = 1 << 20 // 1 MiB of raw text

// ParseFromText extracts structured questions from pasted text. The parsed
// set is returned for review; nothing is persisted until the caller attaches
// it to a milestone.
func ParseFromText(c *fiber.Ctx) error {
	reqData := new(struct {
		Text string `json:"text"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Text == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Text is required!", nil)
	}

	questions, source := utils.ParseQuestions(reqData.Text)
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "No questions could be extracted!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions parsed.", fiber.Map{
		"questions": questions,
		"count":     len(questions),
		"source":    source,
	})
}

// ParseFromFile extracts questions from an uploaded plain-text document.
func ParseFromFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}
	if !utils.IsAllowedFileType(file.Filename, []string{".txt", ".md", ".csv"}) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only plain text files can be parsed!", nil)
	}

	opened, err := file.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}
	defer opened.Close()

	raw, err := io.ReadAll(io.LimitReader(opened, maxParseBytes))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}

	questions, source := utils.ParseQuestions(string(raw))
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "No questions could be extracted!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions parsed.", fiber.Map{
		"questions": questions,
		"count":     len(questions),
		"source":    source,
		"fileName":  file.Filename,
	})
}
