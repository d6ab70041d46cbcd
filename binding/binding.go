package binding

import (
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Source resolves a column name to its printable value.
type Source interface {
	Value(key string) (string, bool)
}

// Map is a Source backed by a plain map.
type Map map[string]string

// Value implements Source.
func (m Map) Value(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Interpolate 将文本中的 ${Column} 替换为 data 中的值。
// 若 data 为空或列不存在，则保留原占位符。
func Interpolate(text string, data Source) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		key, ok := placeholderKey(match)
		if !ok {
			return match
		}
		if val, ok := data.Value(key); ok {
			return val
		}
		return match
	})
}

// Placeholders returns the distinct column names referenced by text, in
// order of first appearance.
func Placeholders(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, match := range exprPattern.FindAllString(text, -1) {
		key, ok := placeholderKey(match)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func placeholderKey(match string) (string, bool) {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return "", false
	}
	key := strings.TrimSpace(groups[1])
	return key, key != ""
}
