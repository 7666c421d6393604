// Package search 实现多策略的课程检索排序
package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/RecoveryAshes/cursofind/internal/index"
	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/normalizer"
	"github.com/RecoveryAshes/cursofind/internal/utils"
)

// Method 检索打分策略
type Method string

// 支持的打分策略
const (
	MethodSmart     Method = "smart"     // 覆盖率主导,余弦破平 (默认)
	MethodRelevance Method = "relevance" // 命中词数占比
	MethodCosine    Method = "cosine"    // TF-IDF余弦相似度
	MethodTFIDF     Method = "tfidf"     // cosine的别名
)

// ParseMethod 解析策略名
// 策略集合封闭,未知名称返回错误而非静默回退
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodSmart, MethodRelevance, MethodCosine, MethodTFIDF:
		return Method(name), nil
	case "":
		return MethodSmart, nil
	default:
		return "", fmt.Errorf("未知的检索策略: %s (可选: smart, relevance, cosine, tfidf)", name)
	}
}

// smart策略中覆盖率的权重
// 覆盖率以10:1压过余弦分量,命中更多查询词的课程恒排在前
const coverageWeight = 10.0

// Ranker 检索排序器
// 字典、索引与IDF表在构造时注入,检索过程只读,可并发调用
type Ranker struct {
	dict     models.CourseDictionary
	idx      index.InvertedIndex
	idf      index.IDFTable
	norm     *normalizer.Normalizer
	minScore float64
}

// NewRanker 创建排序器
// norm为nil时使用默认停用词集合的归一化器
func NewRanker(dict models.CourseDictionary, idx index.InvertedIndex, idf index.IDFTable, norm *normalizer.Normalizer) *Ranker {
	if norm == nil {
		norm = normalizer.New(nil)
	}
	return &Ranker{dict: dict, idx: idx, idf: idf, norm: norm}
}

// SetMinScore 设置最低得分阈值,低于阈值的结果被过滤
func (r *Ranker) SetMinScore(min float64) {
	r.minScore = min
}

// CorpusStats 语料统计
type CorpusStats struct {
	TotalCourses int     `json:"total_courses"` // 字典中的课程总数
	Vocabulary   int     `json:"vocabulary"`    // 索引词总数
	IndexEntries int     `json:"index_entries"` // 倒排配对总数
	AvgWords     float64 `json:"avg_words"`     // 课程平均词数
}

// CorpusStats 统计当前语料规模
func (r *Ranker) CorpusStats() CorpusStats {
	stats := CorpusStats{
		TotalCourses: len(r.dict),
		Vocabulary:   r.idx.WordCount(),
	}
	totalWords := 0
	for _, course := range r.dict {
		totalWords += course.WordCount()
	}
	for word := range r.idx {
		stats.IndexEntries += r.idx.DocumentFrequency(word)
	}
	if stats.TotalCourses > 0 {
		stats.AvgWords = float64(totalWords) / float64(stats.TotalCourses)
	}
	return stats
}

// Search 执行检索
// 查询归一化后为空或maxResults<=0时返回空结果,不视为错误
func (r *Ranker) Search(query string, method Method, maxResults int) ([]models.ScoreResult, models.SearchStats) {
	start := time.Now()
	stats := models.SearchStats{IndexCourses: len(r.dict)}

	tokens := r.norm.Normalize(query)
	stats.QueryWords = len(tokens)
	if len(tokens) == 0 || maxResults <= 0 {
		stats.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000.0
		return []models.ScoreResult{}, stats
	}

	// 候选生成: 查询词倒排集合的并集
	// 与查询无共享词的课程从不参与打分
	candidates := make(map[string]bool)
	for _, token := range tokens {
		for id := range r.idx.Lookup(token) {
			candidates[id] = true
		}
	}
	stats.Candidates = len(candidates)

	queryVec := index.VectorFromTokens(tokens, r.idf)

	results := make([]models.ScoreResult, 0, len(candidates))
	for id := range candidates {
		course := r.dict[id]
		if course == nil {
			// 索引引用的课程不在字典中,跳过并告警
			utils.Warnf("索引引用了不存在的课程: %s", id)
			continue
		}
		result := r.score(course, tokens, queryVec, method)
		if result.Score < r.minScore {
			continue
		}
		results = append(results, result)
	}

	// 得分降序,同分按标题字典序,保证输出确定性
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Title < results[j].Title
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	stats.Returned = len(results)
	stats.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000.0
	return results, stats
}

// score 按指定策略为单个候选课程打分
// 覆盖率按不重复的查询词计算,同一词在查询中多次出现只计一次
func (r *Ranker) score(course *models.CourseRecord, tokens []string, queryVec map[string]float64, method Method) models.ScoreResult {
	distinct := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		distinct[token] = true
	}
	matched := 0
	for token := range distinct {
		if course.HasWord(token) {
			matched++
		}
	}
	coverage := float64(matched) / float64(len(distinct))
	cosine := index.Cosine(queryVec, index.VectorFromSet(course.Words, r.idf))

	var score float64
	switch method {
	case MethodRelevance:
		score = coverage
	case MethodCosine, MethodTFIDF:
		score = cosine
	default:
		score = coverage*coverageWeight + cosine
	}

	return models.ScoreResult{
		CourseID: course.ID,
		URL:      course.URL,
		Title:    course.Title,
		Score:    score,
		Coverage: coverage,
		Cosine:   cosine,
		Matched:  matched,
	}
}
