package authController_test

import (
	"net/http"
	"testing"

	"drivingschool/config"
	"drivingschool/middleware"
	"drivingschool/models"
	"drivingschool/routers"
	"drivingschool/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authData struct {
	Token string                 `json:"token"`
	User  map[string]interface{} `json:"user"`
}

func TestRegister(t *testing.T) {
	testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)

	code, env := testutil.Do(t, app, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name":     "Dana Learner",
		"email":    "Dana@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	var data authData
	env.Decode(t, &data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "dana@example.com", data.User["email"])
	assert.Equal(t, models.RoleStudent, data.User["role"])
	assert.Equal(t, models.StatusActive, data.User["status"])
	assert.NotContains(t, data.User, "password")

	claims, err := middleware.ParseJWT(data.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	existing := testutil.CreateUser(t, db, models.RoleStudent)

	code, env := testutil.Do(t, app, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name":     "Someone Else",
		"email":    existing.Email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)

	tests := []struct {
		name    string
		body    map[string]interface{}
		wantKey string
	}{
		{"missing name", map[string]interface{}{"email": "a@example.com", "password": "secret123"}, "name"},
		{"blank name", map[string]interface{}{"name": "   ", "email": "a@example.com", "password": "secret123"}, "name"},
		{"bad email", map[string]interface{}{"name": "Al", "email": "nope", "password": "secret123"}, "email"},
		{"short password", map[string]interface{}{"name": "Al", "email": "a@example.com", "password": "123"}, "password"},
		{"unknown role", map[string]interface{}{"name": "Al", "email": "a@example.com", "password": "secret123", "role": "owner"}, "role"},
		{"bad availability", map[string]interface{}{
			"name": "Al", "email": "a@example.com", "password": "secret123", "role": "instructor",
			"availability": []map[string]string{{"day": "Monday", "start_time": "17:00", "end_time": "09:00"}},
		}, "availability[0].end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := testutil.Do(t, app, http.MethodPost, "/api/users/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)

			errs := map[string]string{}
			env.Decode(t, &errs)
			assert.Contains(t, errs, tt.wantKey)
		})
	}
}

func TestLogin(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)

	code, env := testutil.Do(t, app, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    instructor.Email,
		"password": testutil.Password,
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	var data authData
	env.Decode(t, &data)
	claims, err := middleware.ParseJWT(data.Token)
	require.NoError(t, err)
	assert.Equal(t, instructor.ID, claims.User.ID)
	assert.Equal(t, models.RoleInstructor, claims.User.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, instructor.ID).Error)
	assert.NotNil(t, stored.LastActivity)
}

func TestLoginFailures(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	inactive := testutil.CreateUser(t, db, models.RoleStudent, testutil.WithStatus(models.StatusInactive))

	tests := []struct {
		name     string
		body     map[string]string
		wantCode int
		wantMsg  string
	}{
		{"wrong password", map[string]string{"email": student.Email, "password": "wrong-pass"}, http.StatusBadRequest, "Invalid credentials"},
		{"unknown email", map[string]string{"email": "ghost@example.com", "password": "secret123"}, http.StatusBadRequest, "Invalid credentials"},
		{"missing password", map[string]string{"email": student.Email}, http.StatusBadRequest, "Validation failed!"},
		{"inactive account", map[string]string{"email": inactive.Email, "password": testutil.Password}, http.StatusForbidden, "Account is inactive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := testutil.Do(t, app, http.MethodPost, "/api/users/login", "", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.False(t, env.Status)
		})
	}
}

func TestProfile(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	student := testutil.CreateUser(t, db, models.RoleStudent)

	code, _ := testutil.Do(t, app, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := testutil.Do(t, app, http.MethodGet, "/api/users/profile", testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, code)

	var user models.User
	env.Decode(t, &user)
	assert.Equal(t, student.ID, user.ID)
	assert.Equal(t, student.Email, user.Email)

	require.NoError(t, db.Delete(&models.User{}, student.ID).Error)
	code, _ = testutil.Do(t, app, http.MethodGet, "/api/users/profile", testutil.Token(t, student), nil)
	assert.Equal(t, http.StatusNotFound, code)
}
