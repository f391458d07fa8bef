package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Slides SlidesPrompts `yaml:"slides"`
}

type SystemPrompts struct {
	Slides string `yaml:"slides"`
}

type SlidesPrompts struct {
	Generate string `yaml:"generate"`
}

type SlidesParams struct {
	Topic      string
	SlideCount int
}

func Load() (*Prompts, error) {
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	if p.System.Slides == "" || p.Slides.Generate == "" {
		return nil, fmt.Errorf("prompts file %s is missing slide prompts", path)
	}

	return &p, nil
}

func (p *Prompts) RenderSlides(params SlidesParams) (string, error) {
	return render(p.Slides.Generate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
