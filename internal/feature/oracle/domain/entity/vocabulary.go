// Package entity はoracleフィーチャーのドメインモデルを定義します。
package entity

import (
	"errors"
	"strings"
)

// ErrEmptyVocabulary はラベル語彙が空の場合に返されます。
var ErrEmptyVocabulary = errors.New("label vocabulary is empty")

// LabelVocabulary は分類器が返しうるラベルの閉集合です。
// 順序付き・重複なしで、生成後は変更できません。
type LabelVocabulary struct {
	labels []string
}

// NewLabelVocabulary は前後の空白を除去し、空要素と大文字小文字を無視した重複を取り除いて語彙を生成します。
// 重複時は最初の出現を採用します。
func NewLabelVocabulary(labels []string) (LabelVocabulary, error) {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	if len(out) == 0 {
		return LabelVocabulary{}, ErrEmptyVocabulary
	}
	return LabelVocabulary{labels: out}, nil
}

// Labels はラベルのコピーを語彙順で返します。
func (v LabelVocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

// Len はラベル数を返します。
func (v LabelVocabulary) Len() int { return len(v.labels) }

// At はi番目のラベルを返します。
func (v LabelVocabulary) At(i int) string { return v.labels[i] }

// Contains はlabelが語彙に含まれるかを返します（完全一致）。
func (v LabelVocabulary) Contains(label string) bool {
	for _, l := range v.labels {
		if l == label {
			return true
		}
	}
	return false
}

// Fingerprint はキャッシュキー用に語彙を1つの文字列へ連結します。
func (v LabelVocabulary) Fingerprint() string {
	return strings.Join(v.labels, "\x1f")
}
