// Package normalizer 提供文本归一化
// 爬取时对课程文本、检索时对查询串使用同一套规则,
// 两侧归一化结果一致是倒排索引精确匹配的前提
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer 文本归一化器
// 无外部状态,构造后可安全并发使用
type Normalizer struct {
	stopWords map[string]bool // 停用词集合 (构造后只读)
}

// New 创建归一化器
// stopWords为nil时使用默认停用词集合
func New(stopWords map[string]bool) *Normalizer {
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return &Normalizer{stopWords: stopWords}
}

// Normalize 将原始文本归一化为有序词序列
// 处理步骤: 转小写 -> 去重音 -> 过滤非法字符 -> 按空白和连字符切分 -> 去停用词
func (n *Normalizer) Normalize(text string) []string {
	text = strings.ToLower(text)
	text = stripDiacritics(text)

	// 字母、数字与连字符之外的字符一律替换为空白
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}

	// 连字符视为切分边界,复合词拆成独立词
	fields := strings.FieldsFunc(sb.String(), func(r rune) bool {
		return r == ' ' || r == '-'
	})

	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) <= 1 {
			continue
		}
		if n.stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// NormalizeSet 归一化并去重,返回词集合
// 爬取器对课程文本建词集合时使用
func (n *Normalizer) NormalizeSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range n.Normalize(text) {
		set[w] = true
	}
	return set
}

// IsStopWord 检查词是否为停用词
func (n *Normalizer) IsStopWord(word string) bool {
	return n.stopWords[strings.ToLower(word)]
}

// stripDiacritics 去除重音符号
// NFD分解后丢弃所有组合记号,再重组为NFC
func stripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}
