// Package crawler 实现课程目录的广度优先爬取
// 从种子URL出发逐页抓取,经过三层校验门禁后产出课程字典
package crawler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/normalizer"
	"github.com/RecoveryAshes/cursofind/internal/utils"
	"github.com/schollz/progressbar/v3"
)

// CourseCrawler 课程爬取器
// 单线程广度优先遍历,页面预算与队列耗尽均为正常终止状态
type CourseCrawler struct {
	config    models.CrawlConfig
	fetcher   PageFetcher
	validator *PageValidator
	norm      *normalizer.Normalizer
	frontier  *Frontier

	// 爬取产出
	dictionary models.CourseDictionary
	stats      models.CrawlStats

	// 进度条 (可选)
	showProgress bool
}

// NewCourseCrawler 创建爬取器
// norm为nil时使用默认停用词集合的归一化器
func NewCourseCrawler(config models.CrawlConfig, fetcher PageFetcher, norm *normalizer.Normalizer) (*CourseCrawler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, errors.New("页面抓取器不能为空")
	}
	if norm == nil {
		norm = normalizer.New(nil)
	}

	return &CourseCrawler{
		config:     config,
		fetcher:    fetcher,
		validator:  NewPageValidator(config.Domain, config.MinWords),
		norm:       norm,
		frontier:   NewFrontier(config.Domain, config.SeedURL),
		dictionary: make(models.CourseDictionary),
	}, nil
}

// EnableProgress 开启终端进度条
func (c *CourseCrawler) EnableProgress() {
	c.showProgress = true
}

// Run 执行爬取,返回课程字典与统计
// 终止条件: 页面预算耗尽、队列耗尽或context取消
func (c *CourseCrawler) Run(ctx context.Context) (models.CourseDictionary, models.CrawlStats, error) {
	start := time.Now()
	utils.Infof("🚀 开始爬取: 种子=%s 域名=%s 页面预算=%d",
		c.config.SeedURL, c.config.Domain, c.config.MaxPages)

	var bar *progressbar.ProgressBar
	if c.showProgress {
		bar = progressbar.Default(int64(c.config.MaxPages), "爬取进度")
	}

	for c.stats.PagesFetched < c.config.MaxPages {
		if err := ctx.Err(); err != nil {
			c.finish(start)
			return c.dictionary, c.stats, err
		}

		pageURL, ok := c.frontier.Pop()
		if !ok {
			// 队列耗尽,正常终止
			c.stats.FrontierDrained = true
			break
		}

		if c.frontier.IsVisited(pageURL) {
			continue
		}
		c.frontier.MarkVisited(pageURL)

		// 第一层校验: URL模式
		if err := c.validator.ValidateURL(pageURL); err != nil {
			c.stats.RejectedPages++
			utils.Debugf("%v", err)
			continue
		}

		c.stats.HTTPRequests++
		page, err := c.fetcher.Fetch(pageURL)
		if err != nil {
			// 单页失败只记录,不中断爬取
			c.stats.FailedRequests++
			utils.Warnf("抓取失败 [%s]: %v", pageURL, err)
			continue
		}

		c.stats.PagesFetched++
		if bar != nil {
			_ = bar.Add(1)
		}
		utils.Debugf("📥 已抓取 %d/%d: %s (%d个课程块, %d条出链)",
			c.stats.PagesFetched, c.config.MaxPages, pageURL, len(page.Blocks), len(page.Links))

		c.processBlocks(page)
		c.enqueueLinks(page.Links)
	}

	c.finish(start)
	utils.Infof("✅ 爬取完成: 抓取%d页, 收录%d个课程, 索引%d个词, 耗时%.2f秒",
		c.stats.PagesFetched, c.stats.CoursesFound, c.stats.WordsIndexed, c.stats.Duration)
	return c.dictionary, c.stats, nil
}

// processBlocks 处理页面中的课程块
// 每个块独立经过结构层与语义层校验,失败只丢弃该块
func (c *CourseCrawler) processBlocks(page *Page) {
	for _, block := range page.Blocks {
		// 描述缺失时回源课程页补抓
		if strings.TrimSpace(block.Description) == "" && c.config.FetchDesc {
			c.stats.HTTPRequests++
			desc, err := c.fetcher.FetchDescription(block.URL)
			if err != nil {
				c.stats.FailedRequests++
				utils.Debugf("补抓描述失败 [%s]: %v", block.URL, err)
			} else if desc != "" {
				block.Description = desc
				c.stats.DescFetched++
			}
		}

		// 第二层校验: 必要字段
		if err := c.validator.ValidateStructure(block); err != nil {
			c.stats.RejectedPages++
			utils.Debugf("%v", err)
			continue
		}

		// 归一化标题与描述,构建词集合
		words := c.norm.NormalizeSet(block.Title + " " + block.Description)

		// 第三层校验: 词集合基数
		if err := c.validator.ValidateSemantics(block.URL, words); err != nil {
			c.stats.RejectedPages++
			utils.Debugf("%v", err)
			continue
		}

		courseID := models.SlugFromURL(block.URL)
		if courseID == "" {
			c.stats.RejectedPages++
			utils.Warnf("无法从URL派生课程ID: %s", block.URL)
			continue
		}

		// 同一URL重复出现时保留首次收录的记录
		if _, exists := c.dictionary[courseID]; exists {
			continue
		}

		c.dictionary[courseID] = &models.CourseRecord{
			ID:          courseID,
			URL:         block.URL,
			Title:       block.Title,
			Description: block.Description,
			Words:       words,
		}
		c.stats.CoursesFound++
		utils.Debugf("🔍 收录课程: %s (%d个词)", courseID, len(words))
	}
}

// enqueueLinks 将通过URL模式校验的出链入队
// 已访问、已入队与跨域链接由队列自身过滤
func (c *CourseCrawler) enqueueLinks(links []string) {
	for _, link := range links {
		if err := c.validator.ValidateURL(link); err != nil {
			continue
		}
		_ = c.frontier.Push(link)
	}
}

// finish 结算统计
func (c *CourseCrawler) finish(start time.Time) {
	c.stats.Duration = time.Since(start).Seconds()

	vocabulary := make(map[string]bool)
	for _, course := range c.dictionary {
		for w := range course.Words {
			vocabulary[w] = true
		}
	}
	c.stats.WordsIndexed = len(vocabulary)
}
