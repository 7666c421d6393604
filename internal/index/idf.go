package index

import (
	"math"

	"github.com/RecoveryAshes/cursofind/internal/models"
)

// IDFTable 逆文档频率表: 词 -> log(课程总数 / 含该词课程数)
// 对整个字典计算一次,检索与比较共用,不随查询变化
type IDFTable map[string]float64

// BuildIDF 从字典与倒排索引计算逆文档频率表
func BuildIDF(dict models.CourseDictionary, idx InvertedIndex) IDFTable {
	total := float64(len(dict))
	table := make(IDFTable, len(idx))
	if total == 0 {
		return table
	}
	for word, courses := range idx {
		if len(courses) == 0 {
			continue
		}
		table[word] = math.Log(total / float64(len(courses)))
	}
	return table
}

// Get 返回词的IDF权重,未收录的词权重为0
func (t IDFTable) Get(word string) float64 {
	return t[word]
}

// VectorFromTokens 从词序列构建TF-IDF向量
// 词频按出现次数累计,查询串一侧使用
func VectorFromTokens(tokens []string, idf IDFTable) map[string]float64 {
	tf := make(map[string]int, len(tokens))
	for _, w := range tokens {
		tf[w]++
	}
	vec := make(map[string]float64, len(tf))
	for w, n := range tf {
		vec[w] = float64(n) * idf.Get(w)
	}
	return vec
}

// VectorFromSet 从词集合构建TF-IDF向量
// 集合内词频恒为1,课程一侧使用
func VectorFromSet(words map[string]bool, idf IDFTable) map[string]float64 {
	vec := make(map[string]float64, len(words))
	for w := range words {
		vec[w] = idf.Get(w)
	}
	return vec
}

// Cosine 计算两个稀疏向量的余弦相似度
// 任一向量模长为0时返回0,避免除零
func Cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for w, va := range a {
		normA += va * va
		if vb, ok := b[w]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
