package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"lunch_oracle/internal/feature/oracle/domain/entity"
)

// KeywordExtractor はお告げの本文から料理キーワードを抽出します。
type KeywordExtractor struct {
	dictionary []string
	re         *regexp.Regexp
}

// NewKeywordExtractor は辞書からKeywordExtractorを生成します。
// 辞書の語は小文字化・前後空白除去・重複除去されます。空の辞書では常にDefaultFoodKeywordを返します。
func NewKeywordExtractor(dictionary []string) (*KeywordExtractor, error) {
	seen := make(map[string]struct{}, len(dictionary))
	words := make([]string, 0, len(dictionary))
	for _, w := range dictionary {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	k := &KeywordExtractor{dictionary: words}
	if len(words) == 0 {
		return k, nil
	}

	// 同じ開始位置では長い語を優先する（"fried rice" と "rice" など）
	alts := make([]string, len(words))
	copy(alts, words)
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	for i, w := range alts {
		alts[i] = regexp.QuoteMeta(w)
	}

	// \bはASCII専用のため、Unicodeの文字・数字・アンダースコアを単語構成文字として境界を判定する
	pattern := `(?:^|[^\p{L}\p{N}_])(` + strings.Join(alts, "|") + `)(?:[^\p{L}\p{N}_]|$)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile keyword pattern: %w", err)
	}
	k.re = re
	return k, nil
}

// Dictionary は正規化済みの辞書を返します。
func (k *KeywordExtractor) Dictionary() []string {
	out := make([]string, len(k.dictionary))
	copy(out, k.dictionary)
	return out
}

// Extract は本文中で最初に出現する辞書の語を返します。見つからない場合はDefaultFoodKeywordを返します。
func (k *KeywordExtractor) Extract(narrative string) string {
	if k.re == nil {
		return entity.DefaultFoodKeyword
	}
	m := k.re.FindStringSubmatch(strings.ToLower(narrative))
	if m == nil {
		return entity.DefaultFoodKeyword
	}
	return m[1]
}
