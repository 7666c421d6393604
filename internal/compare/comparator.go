// Package compare 实现课程间相似度计算与性能度量
// 五种算法都是两个词集合上的纯函数,余弦与组合策略额外依赖语料的IDF表
package compare

import (
	"fmt"

	"github.com/RecoveryAshes/cursofind/internal/index"
	"github.com/RecoveryAshes/cursofind/internal/models"
)

// Method 相似度算法
type Method string

// 支持的相似度算法
const (
	MethodJaccard  Method = "jaccard"  // 交集/并集
	MethodCosine   Method = "cosine"   // TF-IDF余弦
	MethodOverlap  Method = "overlap"  // 交集/较小集合
	MethodSemantic Method = "semantic" // 主题类别加权
	MethodCombined Method = "combined" // 固定权重混合 (推荐)
)

// AllMethods 返回全部算法,顺序固定
func AllMethods() []Method {
	return []Method{MethodJaccard, MethodCosine, MethodOverlap, MethodSemantic, MethodCombined}
}

// ParseMethod 解析算法名
// 算法集合封闭,未知名称返回错误而非静默回退
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodJaccard, MethodCosine, MethodOverlap, MethodSemantic, MethodCombined:
		return Method(name), nil
	case "":
		return MethodCombined, nil
	default:
		return "", fmt.Errorf("未知的相似度算法: %s (可选: jaccard, cosine, overlap, semantic, combined)", name)
	}
}

// semantic与combined策略的固定权重
const (
	semanticKeywordWeight = 0.6
	semanticJaccardWeight = 0.4

	combinedJaccardWeight  = 0.3
	combinedCosineWeight   = 0.3
	combinedSemanticWeight = 0.4
)

// Comparator 课程相似度比较器
// 构造后只读,可并发调用
type Comparator struct {
	dict       models.CourseDictionary
	idf        index.IDFTable
	categories []Category
	probe      MemoryProbe
}

// NewComparator 创建比较器
// categories为nil时使用默认主题类别表,probe为nil时内存度量降级为0
func NewComparator(dict models.CourseDictionary, idf index.IDFTable, categories []Category, probe MemoryProbe) *Comparator {
	if categories == nil {
		categories = DefaultCategories()
	}
	if probe == nil {
		probe = NoopProbe{}
	}
	return &Comparator{dict: dict, idf: idf, categories: categories, probe: probe}
}

// Compare 计算两门课程的相似度,返回[0,1]内的得分
// 任一课程ID不存在时返回CourseNotFoundError,绝不静默按0分处理
func (c *Comparator) Compare(idA, idB string, method Method) (float64, error) {
	courseA, err := c.dict.Get(idA)
	if err != nil {
		return 0, err
	}
	courseB, err := c.dict.Get(idB)
	if err != nil {
		return 0, err
	}

	// 同一课程与自身的相似度恒为1
	if idA == idB {
		return 1.0, nil
	}

	return c.similarity(courseA, courseB, method), nil
}

// similarity 对两条已解析的课程记录计算相似度
func (c *Comparator) similarity(a, b *models.CourseRecord, method Method) float64 {
	switch method {
	case MethodJaccard:
		return jaccard(a.Words, b.Words)
	case MethodCosine:
		return c.cosine(a, b)
	case MethodOverlap:
		return overlap(a.Words, b.Words)
	case MethodSemantic:
		return c.semantic(a, b)
	default:
		return combinedJaccardWeight*jaccard(a.Words, b.Words) +
			combinedCosineWeight*c.cosine(a, b) +
			combinedSemanticWeight*c.semantic(a, b)
	}
}

// jaccard 交集基数除以并集基数
// 两个集合都为空时定义为0,避免0/0
func jaccard(a, b map[string]bool) float64 {
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// overlap 交集基数除以较小集合基数
// 偏向小集合,两个集合大小悬殊时也可能得高分,这是算法本身的特性
func overlap(a, b map[string]bool) float64 {
	minSize := len(a)
	if len(b) < minSize {
		minSize = len(b)
	}
	if minSize == 0 {
		return 0
	}
	return float64(intersectionSize(a, b)) / float64(minSize)
}

// cosine 两门课程词集合TF-IDF向量的余弦相似度
func (c *Comparator) cosine(a, b *models.CourseRecord) float64 {
	return index.Cosine(
		index.VectorFromSet(a.Words, c.idf),
		index.VectorFromSet(b.Words, c.idf),
	)
}

// semantic 主题类别加权相似度
// 类别命中集合的Jaccard占0.6,词集合Jaccard占0.4;
// 两门课程都不命中任何类别时类别相似度记为1
func (c *Comparator) semantic(a, b *models.CourseRecord) float64 {
	catsA := matchedCategories(a.Words, c.categories)
	catsB := matchedCategories(b.Words, c.categories)

	var keywordSim float64
	switch {
	case len(catsA) == 0 && len(catsB) == 0:
		keywordSim = 1.0
	case len(catsA) == 0 || len(catsB) == 0:
		keywordSim = 0.0
	default:
		keywordSim = jaccard(catsA, catsB)
	}

	return semanticKeywordWeight*keywordSim + semanticJaccardWeight*jaccard(a.Words, b.Words)
}

// intersectionSize 两个集合的交集基数,遍历较小的一方
func intersectionSize(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for w := range a {
		if b[w] {
			count++
		}
	}
	return count
}
