package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines the fields available to every email template.
type EmailData struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	AppName string `json:"AppName"`

	AppURL     string `json:"AppURL"`
	SupportURL string `json:"SupportURL"`

	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
// Blank strings, nil and zero values fall back.
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if value == nil || reflect.ValueOf(value).IsZero() {
		return fallback
	}
	return value
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

const Welcome = "welcome"

var ErrUnknownTemplate = errors.New("templates: unknown template")

// All templates are parsed once; a broken template fails at start-up, not per send.
var (
	textSet = texttpl.Must(texttpl.New("").Funcs(baseFuncs()).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("").Funcs(baseFuncs()).ParseFS(FS, "*.html.tmpl"))
)

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render renders subject, text and html for the given base name from
// <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject string, text string, html string, err error) {
	st := textSet.Lookup(name + ".subject.tmpl")
	tt := textSet.Lookup(name + ".text.tmpl")
	ht := htmlSet.Lookup(name + ".html.tmpl")
	if st == nil || tt == nil || ht == nil {
		return "", "", "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	if subject, err = execute(st, st.Name(), data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(tt, tt.Name(), data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(ht, ht.Name(), data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
