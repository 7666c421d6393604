package compare

import (
	"sort"
	"time"

	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/utils"
)

// 度量报告中共享词样本的最大数量
const topSharedLimit = 5

// Measure 计算相似度并采集性能度量
// 度量只观测,永不影响得分;内存探针失败时内存增量记0
func (c *Comparator) Measure(idA, idB string, method Method) (*models.PerformanceMetrics, error) {
	courseA, err := c.dict.Get(idA)
	if err != nil {
		return nil, err
	}
	courseB, err := c.dict.Get(idB)
	if err != nil {
		return nil, err
	}

	memBefore, err := c.probe.RSS()
	if err != nil {
		utils.Debugf("内存采样失败: %v", err)
		memBefore = 0
	}

	start := time.Now()
	var score float64
	if idA == idB {
		score = 1.0
	} else {
		score = c.similarity(courseA, courseB, method)
	}
	elapsed := time.Since(start)

	memAfter, err := c.probe.RSS()
	if err != nil {
		utils.Debugf("内存采样失败: %v", err)
		memAfter = memBefore
	}

	shared := sharedWords(courseA.Words, courseB.Words)
	union := courseA.WordCount() + courseB.WordCount() - len(shared)
	var overlapRatio float64
	if union > 0 {
		overlapRatio = float64(len(shared)) / float64(union)
	}

	top := shared
	if len(top) > topSharedLimit {
		top = top[:topSharedLimit]
	}

	return &models.PerformanceMetrics{
		Method:      string(method),
		Score:       score,
		WordsA:      courseA.WordCount(),
		WordsB:      courseB.WordCount(),
		SharedWords: len(shared),
		UnionWords:  union,
		Overlap:     overlapRatio,
		ElapsedMs:   float64(elapsed.Microseconds()) / 1000.0,
		MemoryDelta: memAfter - memBefore,
		TopShared:   top,
	}, nil
}

// CompareAll 用全部五种算法比较同一对课程
// 返回算法名到度量的映射,供并排对比
func (c *Comparator) CompareAll(idA, idB string) (map[Method]*models.PerformanceMetrics, error) {
	results := make(map[Method]*models.PerformanceMetrics, len(AllMethods()))
	for _, method := range AllMethods() {
		metrics, err := c.Measure(idA, idB, method)
		if err != nil {
			return nil, err
		}
		results[method] = metrics
	}
	return results, nil
}

// FindSimilar 在整个字典中检索与指定课程最相似的前topK门课程
// 结果按得分降序,同分按标题字典序,不包含课程自身
func (c *Comparator) FindSimilar(courseID string, topK int, method Method) ([]models.ScoreResult, error) {
	course, err := c.dict.Get(courseID)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		return []models.ScoreResult{}, nil
	}

	results := make([]models.ScoreResult, 0, len(c.dict))
	for _, otherID := range c.dict.SortedIDs() {
		if otherID == courseID {
			continue
		}
		other := c.dict[otherID]
		results = append(results, models.ScoreResult{
			CourseID: otherID,
			URL:      other.URL,
			Title:    other.Title,
			Score:    c.similarity(course, other, method),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Title < results[j].Title
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// sharedWords 返回两个词集合的交集,按字典序排列
func sharedWords(a, b map[string]bool) []string {
	if len(b) < len(a) {
		a, b = b, a
	}
	var shared []string
	for w := range a {
		if b[w] {
			shared = append(shared, w)
		}
	}
	sort.Strings(shared)
	return shared
}
