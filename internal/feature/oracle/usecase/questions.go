package usecase

import (
	"fmt"
	"strings"
	"text/template"
)

// ReflectionQuestions はラベルを埋め込んだリフレクション用の質問文を組み立てます。
type ReflectionQuestions struct {
	tmpls []*template.Template
}

// NewReflectionQuestions はtext/template形式の質問文を解析します。テンプレート内では{{.Label}}が使えます。
func NewReflectionQuestions(texts []string) (*ReflectionQuestions, error) {
	q := &ReflectionQuestions{tmpls: make([]*template.Template, 0, len(texts))}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("question %d is empty", i)
		}
		tmpl, err := template.New(fmt.Sprintf("question-%d", i)).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse question %d: %w", i, err)
		}
		q.tmpls = append(q.tmpls, tmpl)
	}
	return q, nil
}

// Render はラベルを埋め込んだ質問文を定義順に返します。
func (q *ReflectionQuestions) Render(label string) ([]string, error) {
	if q == nil {
		return nil, nil
	}
	out := make([]string, 0, len(q.tmpls))
	for _, tmpl := range q.tmpls {
		var b strings.Builder
		if err := tmpl.Execute(&b, struct{ Label string }{Label: label}); err != nil {
			return nil, fmt.Errorf("render question: %w", err)
		}
		out = append(out, b.String())
	}
	return out, nil
}
