package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"goeda/internal/errors"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Templates exposes the parsed report templates to other surfaces; the
// dashboard renders the same profiling report the CLI does.
func Templates() (*template.Template, error) {
	return parseTemplates()
}

// parseTemplates loads the report templates with the shared helper funcs.
func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
		"num": func(f float64) string { return fmt.Sprintf("%.4g", f) },
		"mul": func(a, b float64) float64 { return a * b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}
	return templates, nil
}

// renderToFile executes a template into path, writing only on success so a
// template failure never leaves a truncated artifact behind.
func renderToFile(templates *template.Template, name, path string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.WithCode(errors.CodeStageFailed, errors.Wrapf(err, "failed to render %s", name))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WithCode(errors.CodeStageFailed, errors.Wrapf(err, "failed to create %s", filepath.Dir(path)))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.WithCode(errors.CodeStageFailed, errors.Wrapf(err, "failed to write %s", path))
	}
	return nil
}
