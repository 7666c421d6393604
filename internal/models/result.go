package models

// ScoreResult 检索打分结果
// 按分数降序排列,同分按标题字典序升序
type ScoreResult struct {
	CourseID string  `json:"course_id"` // 课程ID
	URL      string  `json:"url"`       // 课程URL
	Title    string  `json:"title"`     // 课程标题
	Score    float64 `json:"score"`     // 综合得分
	Coverage float64 `json:"coverage"`  // 查询词覆盖率 (命中词数/查询词数)
	Cosine   float64 `json:"cosine"`    // TF-IDF余弦相似度
	Matched  int     `json:"matched"`   // 命中的查询词数
}

// SearchStats 检索统计
type SearchStats struct {
	QueryWords   int     `json:"query_words"`   // 规范化后的查询词数
	Candidates   int     `json:"candidates"`    // 候选课程数 (倒排并集)
	Returned     int     `json:"returned"`      // 实际返回的结果数
	ElapsedMs    float64 `json:"elapsed_ms"`    // 检索耗时(毫秒)
	IndexCourses int     `json:"index_courses"` // 索引中的课程总数
}

// PerformanceMetrics 相似度比较的性能度量
// 所有字段在一次比较内采集,时间与内存均为该次调用的增量
type PerformanceMetrics struct {
	Method      string   `json:"method"`       // 所用算法
	Score       float64  `json:"score"`        // 相似度得分 [0,1]
	WordsA      int      `json:"words_a"`      // 课程A词集合基数
	WordsB      int      `json:"words_b"`      // 课程B词集合基数
	SharedWords int      `json:"shared_words"` // 共享词数 (交集基数)
	UnionWords  int      `json:"union_words"`  // 词汇并集基数
	Overlap     float64  `json:"overlap"`      // 词汇重叠率 (交集/并集)
	ElapsedMs   float64  `json:"elapsed_ms"`   // 计算耗时(毫秒)
	MemoryDelta int64    `json:"memory_delta"` // 内存增量(字节), 探针不可用时为0
	TopShared   []string `json:"top_shared"`   // 共享词样本 (字典序前若干个)
}
