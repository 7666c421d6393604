package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// CrawlConfig 爬取配置
type CrawlConfig struct {
	SeedURL   string `json:"seed_url" mapstructure:"seed_url"`     // 起始URL
	Domain    string `json:"domain" mapstructure:"domain"`         // 允许的域名 (跨域链接一律过滤)
	MaxPages  int    `json:"max_pages" mapstructure:"max_pages"`   // 页面预算: 成功抓取的页面上限
	MinWords  int    `json:"min_words" mapstructure:"min_words"`   // 语义校验: 课程词集合最小基数 (默认:3)
	WaitTime  int    `json:"wait_time" mapstructure:"wait_time"`   // HTTP超时时间(秒) (默认:10)
	UserAgent string `json:"user_agent" mapstructure:"user_agent"` // HTTP请求User-Agent
	FetchDesc bool   `json:"fetch_desc" mapstructure:"fetch_desc"` // 目录块缺少描述时是否回源课程页补抓 (默认:true)
}

// Validate 验证配置
func (c *CrawlConfig) Validate() error {
	if c.MaxPages < 1 {
		return fmt.Errorf("页面预算必须大于0")
	}
	if c.MinWords < 1 {
		return fmt.Errorf("最小词数必须大于0")
	}
	if c.WaitTime < 1 || c.WaitTime > 120 {
		return fmt.Errorf("超时时间必须在1-120秒之间")
	}
	if err := ValidateURL(c.SeedURL); err != nil {
		return fmt.Errorf("起始URL无效: %w", err)
	}
	if c.Domain == "" {
		return fmt.Errorf("域名不能为空")
	}
	return nil
}

// ValidateURL 验证URL格式 (必须是绝对的http/https URL)
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL不能为空")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("URL格式无效: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("不支持的协议: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL缺少主机名")
	}
	return nil
}

// CrawlStats 爬取统计
type CrawlStats struct {
	PagesFetched    int     `json:"pages_fetched"`    // 成功抓取的页面数 (计入预算)
	HTTPRequests    int     `json:"http_requests"`    // 发起的HTTP请求数
	FailedRequests  int     `json:"failed_requests"`  // 失败的HTTP请求数
	RejectedPages   int     `json:"rejected_pages"`   // 校验门禁拒绝的页面数
	CoursesFound    int     `json:"courses_found"`    // 抽取到的课程数
	WordsIndexed    int     `json:"words_indexed"`    // 索引的不同词数
	DescFetched     int     `json:"desc_fetched"`     // 回源补抓的描述数
	FrontierDrained bool    `json:"frontier_drained"` // 是否因队列耗尽而终止 (false=预算耗尽)
	Duration        float64 `json:"duration"`         // 总耗时(秒)
}

// CrawlRun 一次爬取运行
// 记录运行标识、配置与统计,供报告落盘
type CrawlRun struct {
	ID          string     `json:"id"`                     // 运行唯一ID (UUID)
	SeedURL     string     `json:"seed_url"`               // 起始URL
	Domain      string     `json:"domain"`                 // 目标域名
	CreatedAt   time.Time  `json:"created_at"`             // 创建时间
	CompletedAt *time.Time `json:"completed_at,omitempty"` // 完成时间

	Config CrawlConfig `json:"config"` // 爬取配置
	Stats  CrawlStats  `json:"stats"`  // 爬取统计
}

// NewCrawlRun 创建爬取运行记录
func NewCrawlRun(config CrawlConfig) (*CrawlRun, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &CrawlRun{
		ID:        uuid.New().String(),
		SeedURL:   config.SeedURL,
		Domain:    config.Domain,
		CreatedAt: time.Now(),
		Config:    config,
	}, nil
}

// Complete 标记运行完成并记录统计
func (r *CrawlRun) Complete(stats CrawlStats) {
	now := time.Now()
	r.CompletedAt = &now
	r.Stats = stats
}

// ToJSON 序列化为JSON
func (r *CrawlRun) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
