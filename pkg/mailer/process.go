package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/fittrack-api/pkg/mailer/templates"
)

// ErrBadJob marks a job that can never succeed; the worker drops it instead of requeueing.
var ErrBadJob = errors.New("mailer: bad job")

// Prepare decodes a queued job and renders its template, if any.
func Prepare(body []byte) (*EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		if v, ok := job.Data["Email"].(string); ok {
			job.To = strings.TrimSpace(v)
		}
	}
	if job.To == "" {
		return nil, fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	if job.Template != "" {
		subject, text, html, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
		job.Subject, job.Text, job.HTML = subject, text, html
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return nil, fmt.Errorf("%w: empty message", ErrBadJob)
	}
	return &job, nil
}

// Process prepares one queued job and hands it to s. Send failures are returned
// unwrapped so the caller can retry them.
func Process(ctx context.Context, s Sender, body []byte) error {
	job, err := Prepare(body)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}
