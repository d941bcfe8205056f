package userController_test

import (
	"fmt"
	"net/http"
	"testing"

	"drivingschool/config"
	"drivingschool/models"
	"drivingschool/routers"
	"drivingschool/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsersRequiresAdmin(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	student := testutil.CreateUser(t, db, models.RoleStudent)

	code, env := testutil.Do(t, app, http.MethodGet, "/api/users", testutil.Token(t, student), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "User role 'student' not authorized", env.Message)
}

func TestGetUsersFiltersByRole(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	testutil.CreateUser(t, db, models.RoleStudent)
	testutil.CreateUser(t, db, models.RoleStudent)
	testutil.CreateUser(t, db, models.RoleInstructor)

	code, env := testutil.Do(t, app, http.MethodGet, "/api/users", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code)
	var all []models.User
	env.Decode(t, &all)
	assert.Len(t, all, 4)

	code, env = testutil.Do(t, app, http.MethodGet, "/api/users?role=student", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, code)
	var students []models.User
	env.Decode(t, &students)
	assert.Len(t, students, 2)
	for _, u := range students {
		assert.Equal(t, models.RoleStudent, u.Role)
	}

	code, _ = testutil.Do(t, app, http.MethodGet, "/api/users?role=owner", testutil.Token(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateUser(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)
	other := testutil.CreateUser(t, db, models.RoleStudent)
	token := testutil.Token(t, admin)

	path := fmt.Sprintf("/api/users/%d", instructor.ID)
	code, env := testutil.Do(t, app, http.MethodPut, path, token, map[string]interface{}{
		"name":         "Renamed Instructor",
		"status":       models.StatusInactive,
		"availability": []map[string]string{{"day": "tuesday", "start_time": "09:00", "end_time": "12:30"}},
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var updated models.User
	env.Decode(t, &updated)
	assert.Equal(t, "Renamed Instructor", updated.Name)
	assert.Equal(t, models.StatusInactive, updated.Status)
	require.Len(t, updated.Availability, 1)
	assert.Equal(t, "Tuesday", updated.Availability[0].Day)

	code, env = testutil.Do(t, app, http.MethodPut, path, token, map[string]string{"email": other.Email})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email is already in use", env.Message)

	code, _ = testutil.Do(t, app, http.MethodPut, "/api/users/9999", token, map[string]string{"name": "Nobody"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteUser(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	token := testutil.Token(t, admin)

	code, _ := testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", student.ID), token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", student.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = testutil.Do(t, app, http.MethodDelete, "/api/users/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Where("id = ?", student.ID).Count(&count).Error)
	assert.Zero(t, count)

	code, _ = testutil.Do(t, app, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name": "Returning Student", "email": student.Email, "password": testutil.Password,
	})
	assert.Equal(t, http.StatusCreated, code)
}
