package models

import "fmt"

// CourseNotFoundError 课程未找到错误
// 表示索引、搜索或比较引用了字典中不存在的课程ID
// 对单次调用是致命错误,必须上报调用方,禁止静默替换
type CourseNotFoundError struct {
	CourseID string // 未找到的课程ID
}

// Error 实现error接口
func (e *CourseNotFoundError) Error() string {
	return fmt.Sprintf("课程不存在: %s", e.CourseID)
}

// ValidationError 页面校验错误
// 表示某一层校验门禁拒绝了页面,该页面被丢弃但爬取继续
type ValidationError struct {
	Layer  string // 校验层: syntactic, structural, semantic
	URL    string // 被拒绝的页面URL
	Reason string // 拒绝原因
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("页面校验失败 [%s] %s: %s", e.Layer, e.URL, e.Reason)
}
