package utils

import (
	"fmt"
	"html"
	"time"

	"drivingschool/config"
	"drivingschool/models"

	"github.com/go-resty/resty/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier pushes a stored notification out of the database to the recipient
type Notifier interface {
	Deliver(n models.Notification, recipient models.User) error
}

var notifier Notifier = logNotifier{}

// SetNotifier replaces the process-wide notifier and returns the previous one
func SetNotifier(n Notifier) Notifier {
	prev := notifier
	notifier = n
	return prev
}

// NewNotifier builds the notifier for the configured channels
func NewNotifier(cfg *config.Config) Notifier {
	var channels multiNotifier
	if cfg.SendgridApiKey != "" {
		channels = append(channels, &EmailNotifier{
			sender: cfg.EmailSender,
			client: sendgrid.NewSendClient(cfg.SendgridApiKey),
		})
	}
	if cfg.NotifyWebhookURL != "" {
		channels = append(channels, NewWebhookNotifier(cfg.NotifyWebhookURL))
	}
	if len(channels) == 0 {
		return logNotifier{}
	}
	return channels
}

// Notify stores the notification and delivers it in the background.
// Delivery failures are logged only.
func Notify(db *gorm.DB, n *models.Notification) error {
	if err := db.Create(n).Error; err != nil {
		return err
	}

	var recipient models.User
	if err := db.Select("id", "name", "email").First(&recipient, n.RecipientID).Error; err != nil {
		zap.L().Warn("notification recipient not found", zap.Uint("recipient_id", n.RecipientID), zap.Error(err))
		return nil
	}

	go func(n models.Notification, to models.User, deliverer Notifier) {
		if err := deliverer.Deliver(n, to); err != nil {
			zap.L().Error("notification delivery failed",
				zap.Uint("notification_id", n.ID),
				zap.String("type", n.Type),
				zap.Error(err),
			)
		}
	}(*n, recipient, notifier)

	return nil
}

type logNotifier struct{}

func (logNotifier) Deliver(n models.Notification, recipient models.User) error {
	zap.L().Info("notification stored",
		zap.Uint("notification_id", n.ID),
		zap.Uint("recipient_id", recipient.ID),
		zap.String("type", n.Type),
	)
	return nil
}

type multiNotifier []Notifier

func (m multiNotifier) Deliver(n models.Notification, recipient models.User) error {
	var firstErr error
	for _, channel := range m {
		if err := channel.Deliver(n, recipient); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// EmailNotifier sends notifications through SendGrid
type EmailNotifier struct {
	sender string
	client *sendgrid.Client
}

func (e *EmailNotifier) Deliver(n models.Notification, recipient models.User) error {
	if recipient.Email == "" {
		return nil
	}
	resp, err := e.client.Send(buildEmail(e.sender, n, recipient))
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

var emailSubjects = map[string]string{
	models.NotificationBookingNew:        "New lesson booking",
	models.NotificationBookingUpdated:    "Your lesson was updated",
	models.NotificationAdminMessage:      "Message from the driving school",
	models.NotificationInstructorMessage: "Message from your instructor",
	models.NotificationLessonReminder:    "Lesson reminder",
}

func buildEmail(sender string, n models.Notification, recipient models.User) *mail.SGMailV3 {
	subject, ok := emailSubjects[n.Type]
	if !ok {
		subject = "Driving school notification"
	}
	from := mail.NewEmail("Driving School", sender)
	to := mail.NewEmail(recipient.Name, recipient.Email)
	content := getEmailTemplate(subject, n.Message)
	return mail.NewSingleEmail(from, subject, to, n.Message, content)
}

// getEmailTemplate escapes title and body before placing them in the markup.
func getEmailTemplate(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
	<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
		<h2>%s</h2>
		<p>%s</p>
	</div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(body))
}

// WebhookNotifier posts notifications as JSON to an HTTP endpoint
type WebhookNotifier struct {
	url    string
	client *resty.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: resty.New().
			SetTimeout(10*time.Second).
			SetRetryCount(2).
			SetHeader("Content-Type", "application/json"),
	}
}

type webhookPayload struct {
	ID             uint      `json:"id"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	RecipientID    uint      `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	SenderID       *uint     `json:"sender_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (w *WebhookNotifier) Deliver(n models.Notification, recipient models.User) error {
	resp, err := w.client.R().
		SetBody(webhookPayload{
			ID:             n.ID,
			Type:           n.Type,
			Message:        n.Message,
			RecipientID:    recipient.ID,
			RecipientEmail: recipient.Email,
			SenderID:       n.SenderID,
			CreatedAt:      n.CreatedAt,
		}).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
