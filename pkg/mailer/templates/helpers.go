package templates

import (
	"strings"
	"time"
)

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithSupportURL(url string) Option { return func(d *EmailData) { d.SupportURL = url } }

// BuildWelcome prepares the data for the post-registration email.
func BuildWelcome(appName, appURL, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:    strings.TrimSpace(name),
		Email:   email,
		AppName: appName,
		AppURL:  appURL,
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}
