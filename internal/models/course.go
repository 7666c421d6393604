package models

import (
	"encoding/json"
	"sort"
)

// CourseRecord 课程记录
// 由爬取器在抽取阶段一次性创建,之后不可变
type CourseRecord struct {
	ID          string          `json:"-"`           // 课程唯一ID (URL派生的slug,字典的key)
	URL         string          `json:"url"`         // 课程页面URL
	Title       string          `json:"title"`       // 课程标题
	Description string          `json:"description"` // 课程描述原文
	Words       map[string]bool `json:"-"`           // 归一化词集合 (无重复,无序)
}

// courseJSON 课程记录的序列化形式
// 词集合以字符串数组落盘,与字典文件契约保持一致
type courseJSON struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Words       []string `json:"words"`
}

// MarshalJSON 实现json.Marshaler接口
// 词集合按字典序输出,保证同一份字典两次落盘字节一致
func (c *CourseRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(courseJSON{
		URL:         c.URL,
		Title:       c.Title,
		Description: c.Description,
		Words:       c.SortedWords(),
	})
}

// UnmarshalJSON 实现json.Unmarshaler接口
func (c *CourseRecord) UnmarshalJSON(data []byte) error {
	var raw courseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.URL = raw.URL
	c.Title = raw.Title
	c.Description = raw.Description
	c.Words = make(map[string]bool, len(raw.Words))
	for _, w := range raw.Words {
		c.Words[w] = true
	}
	return nil
}

// HasWord 检查词是否在课程词集合中
func (c *CourseRecord) HasWord(word string) bool {
	return c.Words[word]
}

// WordCount 返回课程词集合大小
func (c *CourseRecord) WordCount() int {
	return len(c.Words)
}

// SortedWords 返回按字典序排列的词列表
func (c *CourseRecord) SortedWords() []string {
	words := make([]string, 0, len(c.Words))
	for w := range c.Words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// CourseDictionary 课程字典: 课程ID -> 课程记录
// 爬取过程中增量写入,爬取结束后只读
type CourseDictionary map[string]*CourseRecord

// Get 按ID查找课程,未找到时返回CourseNotFoundError
func (d CourseDictionary) Get(courseID string) (*CourseRecord, error) {
	course, ok := d[courseID]
	if !ok {
		return nil, &CourseNotFoundError{CourseID: courseID}
	}
	return course, nil
}

// SortedIDs 返回按字典序排列的课程ID列表
func (d CourseDictionary) SortedIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IndexPair 扁平索引行: 课程ID与单个归一化词的配对
// 对应落盘格式 curso_id|palabra,同一(课程,词)组合只出现一次
type IndexPair struct {
	CourseID string // 课程ID
	Word     string // 归一化词
}

// Pairs 从字典导出全部(课程ID, 词)配对
// 按课程ID、词双重字典序排列,保证两次导出结果一致
func (d CourseDictionary) Pairs() []IndexPair {
	pairs := make([]IndexPair, 0, len(d)*16)
	for _, id := range d.SortedIDs() {
		for _, w := range d[id].SortedWords() {
			pairs = append(pairs, IndexPair{CourseID: id, Word: w})
		}
	}
	return pairs
}
