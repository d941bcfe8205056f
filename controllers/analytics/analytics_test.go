package analyticsController_test

import (
	"net/http"
	"testing"
	"time"

	"drivingschool/config"
	analyticsController "drivingschool/controllers/analytics"
	"drivingschool/models"
	"drivingschool/routers"
	"drivingschool/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectWithoutBookings(t *testing.T) {
	db := testutil.Setup(t)
	testutil.CreateUser(t, db, models.RoleStudent)

	a, err := analyticsController.Collect(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.TotalStudents)
	assert.Zero(t, a.TotalBookings)
	assert.Equal(t, "0%", a.CompletionRate)
}

func TestGetAnalytics(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	testutil.CreateUser(t, db, models.RoleStudent)
	course := testutil.CreateCourse(t, db, instructor)

	now := time.Now()
	testutil.CreateBooking(t, db, course, student, instructor, now.Add(24*time.Hour), models.BookingScheduled)
	testutil.CreateBooking(t, db, course, student, instructor, now.Add(-24*time.Hour), models.BookingScheduled)
	testutil.CreateBooking(t, db, course, student, instructor, now.Add(-48*time.Hour), models.BookingCompleted)
	testutil.CreateBooking(t, db, course, student, instructor, now.Add(-72*time.Hour), models.BookingConfirmed)
	testutil.CreateBooking(t, db, course, student, instructor, now.Add(-96*time.Hour), models.BookingCancelled)
	testutil.CreateBooking(t, db, course, student, instructor, now.Add(-120*time.Hour), models.BookingCompleted)

	code, env := testutil.Do(t, app, http.MethodGet, "/api/analytics", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	var a analyticsController.Analytics
	env.Decode(t, &a)
	assert.Equal(t, int64(2), a.TotalStudents)
	assert.Equal(t, int64(1), a.TotalInstructors)
	assert.Equal(t, int64(1), a.ActiveLessons)
	assert.Equal(t, int64(6), a.TotalBookings)
	assert.Equal(t, int64(2), a.CompletedBookings)
	assert.Equal(t, "33%", a.CompletionRate)

	code, _ = testutil.Do(t, app, http.MethodGet, "/api/analytics", testutil.Token(t, student), nil)
	assert.Equal(t, http.StatusForbidden, code)
}
