package scaffold

import (
	"bytes"
	"fmt"
	"text/template"
)

// renderTemplate renders body with data, failing on any missing key.
func renderTemplate(name, body string, data any) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}
