package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/shared"
)

type CourseHandler struct {
	courseSvc CourseServiceInterface
}

func NewCourseHandler(courseSvc CourseServiceInterface) *CourseHandler {
	return &CourseHandler{
		courseSvc: courseSvc,
	}
}

// @Summary Get Course Progress
// @Description Completed lessons of the caller over the lessons of the course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} shared.Response{data=dto.CourseProgressResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/courses/{courseId}/progress [get]
func (h *CourseHandler) GetCourseProgress(c *fiber.Ctx) error {
	courseID, err := idParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	userID, err := callerID(c)
	if err != nil {
		return err
	}

	resp, err := h.courseSvc.CourseProgress(c.UserContext(), userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Enroll In Course
// @Description Enrolls the caller; enrolling again is a no-op
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} shared.Response{data=dto.EnrollmentResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/courses/{courseId}/enroll [post]
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	return h.enrollment(c, h.courseSvc.Enroll, "Enrolled successfully")
}

// @Summary Unenroll From Course
// @Description Removes the caller's enrollment; lesson progress is kept
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} shared.Response{data=dto.EnrollmentResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/courses/{courseId}/unenroll [post]
func (h *CourseHandler) Unenroll(c *fiber.Ctx) error {
	return h.enrollment(c, h.courseSvc.Unenroll, "Unenrolled successfully")
}

func (h *CourseHandler) enrollment(c *fiber.Ctx, apply func(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error), message string) error {
	courseID, err := idParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	userID, err := callerID(c)
	if err != nil {
		return err
	}

	resp, err := apply(c.UserContext(), userID, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, message, resp)
}

// @Summary Get Course Badges
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} shared.Response{data=[]dto.BadgeResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/courses/{courseId}/badges [get]
func (h *CourseHandler) GetCourseBadges(c *fiber.Ctx) error {
	courseID, err := idParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	badges, err := h.courseSvc.CourseBadges(c.UserContext(), courseID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", badges)
}

// @Summary Get Course Leaderboard
// @Description Learners ranked by the sum of their best game scores in the course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param limit query int false "Number of entries (default 50, max 100)"
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/courses/{courseId}/leaderboard [get]
func (h *CourseHandler) GetLeaderboard(c *fiber.Ctx) error {
	courseID, err := idParam(c, "courseId", "course")
	if err != nil {
		return err
	}

	userID, err := callerID(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 0)

	board, err := h.courseSvc.Leaderboard(c.UserContext(), userID, courseID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", board)
}

// @Summary Get My Badges
// @Description Badges earned by the caller
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} shared.Response{data=[]dto.UserBadgeResponse}
// @Router /api/v1/profile/badges [get]
func (h *CourseHandler) GetUserBadges(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	badges, err := h.courseSvc.UserBadges(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", badges)
}
