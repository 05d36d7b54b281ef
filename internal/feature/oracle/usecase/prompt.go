package usecase

import (
	"fmt"
	"strings"
	"text/template"
)

// PromptTemplate は言語モデルへの指示文を組み立てます。
type PromptTemplate struct {
	persona  string
	tmpl     *template.Template
	cuisines []string
}

// promptData はテンプレートに渡す値です。
type promptData struct {
	Label       string
	Reflections []string
	Cuisines    []string
}

// NewPromptTemplate はtext/template形式のテンプレートを解析します。
// テンプレート内ではjoin関数（strings.Join）が使えます。
func NewPromptTemplate(persona, text string, cuisines []string) (*PromptTemplate, error) {
	tmpl, err := template.New("prophecy").
		Funcs(template.FuncMap{"join": strings.Join}).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	cs := make([]string, len(cuisines))
	copy(cs, cuisines)
	return &PromptTemplate{persona: persona, tmpl: tmpl, cuisines: cs}, nil
}

// Persona はロール指示を返します。
func (p *PromptTemplate) Persona() string { return p.persona }

// Render はラベルとリフレクションを埋め込んだ指示文を返します。同じ入力には同じ文字列を返します。
func (p *PromptTemplate) Render(label string, reflections []string) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, promptData{Label: label, Reflections: reflections, Cuisines: p.cuisines}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
