package notificationController_test

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

func TestGetNotificationsUnreadFilter(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	other := testutil.CreateUser(t, db, models.RoleStudent)

	require.NoError(t, db.Create(&models.Notification{RecipientID: student.ID, Type: models.NotificationAdminMessage, Message: "unread"}).Error)
	require.NoError(t, db.Create(&models.Notification{RecipientID: student.ID, Type: models.NotificationAdminMessage, Message: "seen", Read: true}).Error)
	require.NoError(t, db.Create(&models.Notification{RecipientID: other.ID, Type: models.NotificationAdminMessage, Message: "not mine"}).Error)
	token := testutil.Token(t, student)

	code, env := testutil.Do(t, app, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	var all []models.Notification
	env.Decode(t, &all)
	assert.Len(t, all, 2)

	code, env = testutil.Do(t, app, http.MethodGet, "/api/notifications?unread=true", token, nil)
	require.Equal(t, http.StatusOK, code)
	var unread []models.Notification
	env.Decode(t, &unread)
	require.Len(t, unread, 1)
	assert.Equal(t, "unread", unread[0].Message)
}

func TestMarkRead(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	student := testutil.CreateUser(t, db, models.RoleStudent)
	other := testutil.CreateUser(t, db, models.RoleStudent)

	n := models.Notification{RecipientID: student.ID, Type: models.NotificationAdminMessage, Message: "hello"}
	require.NoError(t, db.Create(&n).Error)
	path := fmt.Sprintf("/api/notifications/%d/read", n.ID)

	code, _ := testutil.Do(t, app, http.MethodPut, path, testutil.Token(t, other), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env := testutil.Do(t, app, http.MethodPut, path, testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var marked models.Notification
	env.Decode(t, &marked)
	assert.True(t, marked.Read)

	// marking again is harmless
	code, _ = testutil.Do(t, app, http.MethodPut, path, testutil.Token(t, student), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestBroadcast(t *testing.T) {
	db := testutil.Setup(t)
	app := routers.NewApp(config.AppConfig)
	admin := testutil.CreateUser(t, db, models.RoleAdmin)
	instructor := testutil.CreateUser(t, db, models.RoleInstructor)
	testutil.CreateUser(t, db, models.RoleStudent)
	testutil.CreateUser(t, db, models.RoleStudent)
	token := testutil.Token(t, admin)

	count := func(kind string) int64 {
		var n int64
		require.NoError(t, db.Model(&models.Notification{}).Where("type = ?", kind).Count(&n).Error)
		return n
	}

	code, env := testutil.Do(t, app, http.MethodPost, "/api/notifications/broadcast", token, map[string]interface{}{
		"role":    models.RoleStudent,
		"message": "Office closed on Friday",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, int64(2), count(models.NotificationAdminMessage))

	code, _ = testutil.Do(t, app, http.MethodPost, "/api/notifications/broadcast", token, map[string]interface{}{
		"recipientId": instructor.ID,
		"message":     "Please update your availability",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, int64(3), count(models.NotificationAdminMessage))

	tests := []struct {
		name     string
		token    string
		body     map[string]interface{}
		wantCode int
	}{
		{"no target", token, map[string]interface{}{"message": "hi"}, http.StatusBadRequest},
		{"unknown recipient", token, map[string]interface{}{"recipientId": 9999, "message": "hi"}, http.StatusNotFound},
		{"not admin", testutil.Token(t, instructor), map[string]interface{}{"role": models.RoleStudent, "message": "hi"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := testutil.Do(t, app, http.MethodPost, "/api/notifications/broadcast", tt.token, tt.body)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
