// Package testutil sets up an in-memory database and request helpers for HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"drivingschool/config"
	"drivingschool/database"
	"drivingschool/middleware"
	"drivingschool/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Password is the plain password of every user made by CreateUser
const Password = "secret123"

var seq atomic.Uint64

// Setup installs a test config and a fresh migrated sqlite database as the globals
func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	prevCfg, prevDB := config.AppConfig, database.Database
	config.AppConfig = &config.Config{
		AppEnv:      "test",
		JWTKey:      "test-secret",
		JWTTTL:      time.Hour,
		SaltRound:   bcrypt.MinCost,
		CorsOrigins: "*",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), true)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() {
		sqlDB.Close()
		config.AppConfig, database.Database = prevCfg, prevDB
	})
	return db
}

type UserOption func(*models.User)

func WithName(name string) UserOption {
	return func(u *models.User) { u.Name = name }
}

func WithStatus(status string) UserOption {
	return func(u *models.User) { u.Status = status }
}

// CreateUser stores a user with the given role and the shared Password
func CreateUser(t *testing.T, db *gorm.DB, role string, opts ...UserOption) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	n := seq.Add(1)
	user := models.User{
		Name:     fmt.Sprintf("%s %d", role, n),
		Email:    fmt.Sprintf("%s%d@example.com", role, n),
		Password: string(hash),
		Role:     role,
		Status:   models.StatusActive,
	}
	for _, opt := range opts {
		opt(&user)
	}

	require.NoError(t, db.Create(&user).Error)
	return user
}

// Token signs a bearer token for user
func Token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func CreateCourse(t *testing.T, db *gorm.DB, instructor models.User) models.Course {
	t.Helper()
	course := models.Course{
		Title:        fmt.Sprintf("Course %d", seq.Add(1)),
		Description:  "Manual transmission basics",
		Duration:     60,
		Price:        45,
		InstructorID: instructor.ID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func CreateBooking(t *testing.T, db *gorm.DB, course models.Course, student, instructor models.User, date time.Time, status string) models.Booking {
	t.Helper()
	booking := models.Booking{
		CourseID:     course.ID,
		StudentID:    student.ID,
		InstructorID: instructor.ID,
		Date:         date,
		Status:       status,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

// Envelope is the response body every endpoint returns
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals the envelope data into v
func (e Envelope) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v))
}

// Do sends a JSON request to app and decodes the envelope. An empty token sends no Authorization header.
func Do(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if resp.StatusCode != http.StatusNoContent && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env
}
