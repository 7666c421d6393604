// Package index 实现倒排索引的构建与持久化
// 索引从完整的课程字典一次性构建,之后只读,可安全并发查询
package index

import (
	"fmt"
	"sort"

	"github.com/RecoveryAshes/cursofind/internal/models"
)

// InvertedIndex 倒排索引: 归一化词 -> 包含该词的课程ID集合
type InvertedIndex map[string]map[string]bool

// Build 从课程字典构建倒排索引
// 对每个(课程ID, 词)配对做一次插入,构建成本与总词数成正比
func Build(dict models.CourseDictionary) InvertedIndex {
	idx := make(InvertedIndex)
	for id, course := range dict {
		for word := range course.Words {
			courses, ok := idx[word]
			if !ok {
				courses = make(map[string]bool)
				idx[word] = courses
			}
			courses[id] = true
		}
	}
	return idx
}

// Lookup 返回包含指定词的课程ID集合
// 词不存在时返回nil,调用方应按空集合处理
func (idx InvertedIndex) Lookup(word string) map[string]bool {
	return idx[word]
}

// Courses 返回包含指定词的课程ID列表,按字典序排列
func (idx InvertedIndex) Courses(word string) []string {
	set := idx[word]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WordCount 返回索引词数
func (idx InvertedIndex) WordCount() int {
	return len(idx)
}

// DocumentFrequency 返回包含指定词的课程数
func (idx InvertedIndex) DocumentFrequency(word string) int {
	return len(idx[word])
}

// Verify 校验索引与字典的一致性
// 要求: 字典中每个(课程, 词)配对都能在索引中命中,
// 且索引不引用字典之外的课程ID
func (idx InvertedIndex) Verify(dict models.CourseDictionary) error {
	for id, course := range dict {
		for word := range course.Words {
			if !idx[word][id] {
				return fmt.Errorf("索引缺失配对: (%s, %s)", id, word)
			}
		}
	}
	for word, courses := range idx {
		for id := range courses {
			if _, ok := dict[id]; !ok {
				return fmt.Errorf("索引引用了不存在的课程: (%s, %s)", id, word)
			}
		}
	}
	return nil
}
