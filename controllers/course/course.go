package controllers

import (
	"errors"

	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"
	courseValidator "drivingschool/validators/course"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetCourses lists all courses with their instructor's name
func GetCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Scopes(models.WithInstructorName).Order("created_at desc").Find(&courses).Error; err != nil {
		zap.L().Error("listing courses failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourse returns one course
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := findCourse(database.Database.Db, courseID)
	if err != nil {
		return courseLookupError(c, courseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse adds a course owned by an existing instructor
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := requireInstructor(db, reqData.Instructor); err != nil {
		return instructorLookupError(c, reqData.Instructor, err)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Duration:     reqData.Duration,
		Price:        reqData.Price,
		InstructorID: reqData.Instructor,
	}

	if err := db.Create(&course).Error; err != nil {
		zap.L().Error("creating course failed", zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	created, err := findCourse(db, course.ID)
	if err != nil {
		return courseLookupError(c, course.ID, err)
	}

	zap.L().Info("course created", zap.Uint("course_id", course.ID))
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", created)
}

// UpdateCourse patches the provided fields
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return courseLookupError(c, courseID, err)
	}

	if reqData.Instructor != nil && *reqData.Instructor != course.InstructorID {
		if err := requireInstructor(db, *reqData.Instructor); err != nil {
			return instructorLookupError(c, *reqData.Instructor, err)
		}
		course.InstructorID = *reqData.Instructor
	}
	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}

	if err := db.Omit(clause.Associations).Save(&course).Error; err != nil {
		zap.L().Error("updating course failed", zap.Uint("course_id", courseID), zap.Error(err))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	updated, err := findCourse(db, courseID)
	if err != nil {
		return courseLookupError(c, courseID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", updated)
}

// DeleteCourse removes a course. Bookings keep their dangling course id.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	result := database.Database.Db.Delete(&models.Course{}, courseID)
	if result.Error != nil {
		zap.L().Error("deleting course failed", zap.Uint("course_id", courseID), zap.Error(result.Error))
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted", nil)
}

func findCourse(db *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := db.Scopes(models.WithInstructorName).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

var errNotInstructor = errors.New("user is not an instructor")

func requireInstructor(db *gorm.DB, id uint) error {
	var user models.User
	if err := db.Select("id", "role").First(&user, id).Error; err != nil {
		return err
	}
	if user.Role != models.RoleInstructor {
		return errNotInstructor
	}
	return nil
}

func courseLookupError(c *fiber.Ctx, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}
	zap.L().Error("loading course failed", zap.Uint("course_id", id), zap.Error(err))
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
}

func instructorLookupError(c *fiber.Ctx, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errNotInstructor) {
		return middleware.ValidationErrorResponse(c, map[string]string{"instructor": "Instructor not found!"})
	}
	zap.L().Error("loading instructor failed", zap.Uint("instructor_id", id), zap.Error(err))
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error", nil)
}
