package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RecoveryAshes/cursofind/internal/models"
)

// 校验层名称
const (
	LayerSyntactic  = "syntactic"  // URL模式校验
	LayerStructural = "structural" // 必要字段校验
	LayerSemantic   = "semantic"   // 词集合基数校验
)

// PageValidator 页面三层校验门禁
// 任意一层失败即丢弃页面,但不中断爬取
type PageValidator struct {
	domain   string // 目标域名
	minWords int    // 语义层要求的最小词数
}

// NewPageValidator 创建校验器
func NewPageValidator(domain string, minWords int) *PageValidator {
	return &PageValidator{domain: domain, minWords: minWords}
}

// ValidateURL 第一层: URL模式校验
// 要求绝对的站内http(s)地址,排除邮箱链接与带扩展名的资源文件
func (v *PageValidator) ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || !parsed.IsAbs() {
		return &models.ValidationError{
			Layer: LayerSyntactic, URL: urlStr, Reason: "不是绝对URL",
		}
	}

	if v.domain != "" && !strings.Contains(parsed.Host, v.domain) {
		return &models.ValidationError{
			Layer: LayerSyntactic, URL: urlStr, Reason: "域名不匹配: " + parsed.Host,
		}
	}

	lower := strings.ToLower(urlStr)
	if strings.Contains(lower, "@") || strings.Contains(lower, "mailto:") {
		return &models.ValidationError{
			Layer: LayerSyntactic, URL: urlStr, Reason: "邮箱链接",
		}
	}

	// 路径以/结尾、无扩展名或.html/.htm的视为页面,其余扩展名视为资源文件
	path := strings.ToLower(parsed.Path)
	if path == "" || strings.HasSuffix(path, "/") {
		return nil
	}
	last := path[strings.LastIndex(path, "/")+1:]
	if !strings.Contains(last, ".") {
		return nil
	}
	if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm") {
		return nil
	}
	return &models.ValidationError{
		Layer: LayerSyntactic, URL: urlStr, Reason: "非页面资源: " + last,
	}
}

// ValidateStructure 第二层: 必要字段校验
// 课程块必须有非空标题与非空描述
func (v *PageValidator) ValidateStructure(block CourseBlock) error {
	if strings.TrimSpace(block.Title) == "" {
		return &models.ValidationError{
			Layer: LayerStructural, URL: block.URL, Reason: "标题为空",
		}
	}
	if strings.TrimSpace(block.Description) == "" {
		return &models.ValidationError{
			Layer: LayerStructural, URL: block.URL, Reason: "描述为空",
		}
	}
	return nil
}

// ValidateSemantics 第三层: 词集合基数校验
// 归一化词数低于阈值的页面视为占位页或错误页
func (v *PageValidator) ValidateSemantics(courseURL string, words map[string]bool) error {
	if len(words) < v.minWords {
		return &models.ValidationError{
			Layer: LayerSemantic, URL: courseURL,
			Reason: fmt.Sprintf("归一化词数不足: %d < %d", len(words), v.minWords),
		}
	}
	return nil
}
