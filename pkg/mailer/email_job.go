package mailer

import (
	"time"

	"github.com/google/uuid"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template with Data, or a literal Subject with Text/HTML bodies.
type EmailJob struct {
	ID       string         `json:"id"`
	QueuedAt time.Time      `json:"queued_at"`
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// NewTemplateJob builds a job rendered by the worker from the named template.
func NewTemplateJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{
		ID:       uuid.NewString(),
		QueuedAt: time.Now().UTC(),
		To:       to,
		Template: template,
		Data:     data,
	}
}
