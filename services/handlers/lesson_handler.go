package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/shared"
)

type LessonGameHandler struct {
	gameSvc LessonGameServiceInterface
}

func NewLessonGameHandler(gameSvc LessonGameServiceInterface) *LessonGameHandler {
	return &LessonGameHandler{
		gameSvc: gameSvc,
	}
}

// @Summary Get Lesson Questions
// @Description Build a fresh matching quiz for the lesson out of its eligible media
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} dto.InsufficientDataResponse
// @Failure 404 {object} shared.Response
// @Router /api/v1/lessons/{lessonId}/questions [get]
func (h *LessonGameHandler) GetQuestions(c *fiber.Ctx) error {
	lessonID, err := idParam(c, "lessonId", "lesson")
	if err != nil {
		return err
	}

	questions, err := h.gameSvc.GetQuestions(c.UserContext(), lessonID)
	if err != nil {
		return err
	}

	return shared.WriteJSON(c, fiber.StatusOK, questions)
}

// @Summary Submit Lesson Result
// @Description Record an attempt; the best accuracy and game score are kept and badges are awarded on the first pass
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Param result body dto.SubmitResultRequest true "Attempt result"
// @Success 200 {object} progress.Summary
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} shared.Response
// @Failure 429 {object} shared.Response
// @Router /api/v1/lessons/{lessonId}/result [post]
func (h *LessonGameHandler) SubmitResult(c *fiber.Ctx) error {
	lessonID, err := idParam(c, "lessonId", "lesson")
	if err != nil {
		return err
	}

	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return shared.WriteJSON(c, fiber.StatusBadRequest, dto.CreateValidationErrorResponse(err))
	}

	summary, err := h.gameSvc.SubmitResult(c.UserContext(), userID, lessonID, req)
	if err != nil {
		return err
	}

	return shared.WriteJSON(c, fiber.StatusOK, summary)
}

// @Summary Get Lesson Progress
// @Description Best stored result of the caller for the lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} progress.Snapshot
// @Failure 404 {object} shared.Response
// @Router /api/v1/lessons/{lessonId}/progress [get]
func (h *LessonGameHandler) GetProgress(c *fiber.Ctx) error {
	lessonID, err := idParam(c, "lessonId", "lesson")
	if err != nil {
		return err
	}

	userID, err := callerID(c)
	if err != nil {
		return err
	}

	snapshot, err := h.gameSvc.GetProgress(c.UserContext(), userID, lessonID)
	if err != nil {
		return err
	}

	return shared.WriteJSON(c, fiber.StatusOK, snapshot)
}

// @Summary Get Question Pool
// @Description Media a lesson may draw its questions from
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.QuestionPoolResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/lessons/{lessonId}/question-pool [get]
func (h *LessonGameHandler) GetQuestionPool(c *fiber.Ctx) error {
	lessonID, err := idParam(c, "lessonId", "lesson")
	if err != nil {
		return err
	}

	pool, err := h.gameSvc.GetQuestionPool(c.UserContext(), lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", pool)
}
