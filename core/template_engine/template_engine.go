package template_engine

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
	"time"

	"github.com/tristendillon/importfix/core/logger"
)

//go:embed templates
var TemplateFS embed.FS

type TemplateRef struct {
	Path string
}

var TEMPLATES = struct {
	INIT_CONFIG TemplateRef
}{
	INIT_CONFIG: TemplateRef{Path: "init/importfix.yaml.tmpl"},
}

type TemplateEngine struct {
	funcMap template.FuncMap
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"quote": strconv.Quote,
		"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	}
}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{funcMap: getDefaultFuncMap()}
}

// Render executes a file template and returns the output.
func (te *TemplateEngine) Render(templateRef TemplateRef, data interface{}) ([]byte, error) {
	templatePath := filepath.ToSlash(filepath.Join("templates", templateRef.Path))
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(filepath.Base(templateRef.Path)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateRef.Path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templateRef.Path, err)
	}
	return buf.Bytes(), nil
}

// GenerateFile renders templateRef into outputPath, creating parent directories.
func (te *TemplateEngine) GenerateFile(templateRef TemplateRef, outputPath string, data interface{}) error {
	out, err := te.Render(templateRef, data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	logger.Debug("Generated %s from %s", outputPath, templateRef.Path)
	return nil
}
