package crawler

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
)

// CourseBlock 目录页中的单个课程块
type CourseBlock struct {
	Title       string // 课程标题
	URL         string // 课程详情页URL (绝对地址)
	Description string // 课程描述 (可能为空,由回源补抓填充)
}

// Page 一次抓取的解析结果
type Page struct {
	URL    string        // 页面URL
	Title  string        // 页面标题
	Blocks []CourseBlock // 页面中解析出的课程块
	Links  []string      // 页面中的站内出链 (绝对地址)
}

// PageFetcher 页面抓取接口
// 爬取器通过该接口获取页面,便于测试时注入桩实现
type PageFetcher interface {
	// Fetch 抓取并解析一个目录页
	Fetch(pageURL string) (*Page, error)

	// FetchDescription 回源抓取课程详情页的描述文本
	FetchDescription(courseURL string) (string, error)
}

// CollyFetcher 基于Colly的同步页面抓取器
// 每次Fetch阻塞到响应解析完成,由调用方控制抓取节奏
type CollyFetcher struct {
	collector *colly.Collector

	// 最近一次请求的响应体与错误 (同步使用,无需加锁)
	body     []byte
	fetchErr error
}

// NewCollyFetcher 创建抓取器
// waitTime为HTTP超时时间(秒),userAgent为请求头标识
func NewCollyFetcher(waitTime int, userAgent string) *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(time.Duration(waitTime) * time.Second)

	cf := &CollyFetcher{collector: c}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Encoding", "gzip, deflate, br")
		utils.Debugf("抓取页面: %s", r.URL)
	})

	c.OnResponse(func(r *colly.Response) {
		body := r.Body
		encoding := r.Headers.Get("Content-Encoding")
		if encoding != "" {
			decompressed, err := decompressResponse(encoding, r.Body)
			if err != nil {
				utils.Warnf("解压响应失败 [%s] (编码=%s): %v", r.Request.URL, encoding, err)
			} else {
				body = decompressed
			}
		}
		cf.body = body
	})

	c.OnError(func(r *colly.Response, err error) {
		cf.fetchErr = fmt.Errorf("请求失败 [%s]: %w", r.Request.URL, err)
	})

	return cf
}

// Fetch 抓取并解析一个目录页
func (cf *CollyFetcher) Fetch(pageURL string) (*Page, error) {
	doc, err := cf.fetchDocument(pageURL)
	if err != nil {
		return nil, err
	}
	return parsePage(doc, pageURL), nil
}

// FetchDescription 回源抓取课程详情页的描述文本
// 目录块缺少描述时的补抓手段,失败不影响爬取主流程
func (cf *CollyFetcher) FetchDescription(courseURL string) (string, error) {
	doc, err := cf.fetchDocument(courseURL)
	if err != nil {
		return "", err
	}
	return extractDescription(doc.Selection), nil
}

// fetchDocument 同步抓取URL并构建goquery文档
func (cf *CollyFetcher) fetchDocument(pageURL string) (*goquery.Document, error) {
	cf.body = nil
	cf.fetchErr = nil

	if err := cf.collector.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("请求失败 [%s]: %w", pageURL, err)
	}
	if cf.fetchErr != nil {
		return nil, cf.fetchErr
	}
	if len(cf.body) == 0 {
		return nil, fmt.Errorf("响应体为空 [%s]", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(cf.body))
	if err != nil {
		return nil, fmt.Errorf("HTML解析失败 [%s]: %w", pageURL, err)
	}
	return doc, nil
}

// parsePage 从HTML文档解析页面标题、课程块与出链
func parsePage(doc *goquery.Document, pageURL string) *Page {
	page := &Page{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	// 课程块: div.card-body,每块含标题、详情链接与描述段落
	doc.Find("div.card-body").Each(func(_ int, block *goquery.Selection) {
		title := strings.TrimSpace(block.Find("b.card-title").First().Text())
		if title == "" {
			return
		}

		href, ok := block.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		courseURL := models.ResolveURL(pageURL, href)
		if courseURL == "" {
			return
		}

		page.Blocks = append(page.Blocks, CourseBlock{
			Title:       title,
			URL:         courseURL,
			Description: extractDescription(block),
		})
	})

	// 出链: 所有a[href]转为绝对地址,去掉fragment
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		link := models.ResolveURL(pageURL, href)
		if link != "" {
			page.Links = append(page.Links, link)
		}
	})

	return page
}

// extractDescription 按优先级从节点中提取描述文本
// 策略1: text-align:justify样式的段落
// 策略2: 无class无style的普通段落
// 策略3: 其余段落,排除元数据行 (Duración:, Nivel: 等)
func extractDescription(sel *goquery.Selection) string {
	var parts []string

	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		style, _ := p.Attr("style")
		if strings.Contains(style, "text-align:justify") {
			if text := strings.TrimSpace(p.Text()); text != "" {
				parts = append(parts, text)
			}
		}
	})

	if len(parts) == 0 {
		sel.Find("p").Each(func(_ int, p *goquery.Selection) {
			if _, hasClass := p.Attr("class"); hasClass {
				return
			}
			if _, hasStyle := p.Attr("style"); hasStyle {
				return
			}
			if text := strings.TrimSpace(p.Text()); len(text) > 10 {
				parts = append(parts, text)
			}
		})
	}

	if len(parts) == 0 {
		metaPrefixes := []string{"Duración:", "Nivel:", "Fecha:", "Precio:", "Modalidad:", "Horario:"}
		sel.Find("p").Each(func(_ int, p *goquery.Selection) {
			text := strings.TrimSpace(p.Text())
			if len(text) <= 20 {
				return
			}
			for _, prefix := range metaPrefixes {
				if strings.Contains(text, prefix) {
					return
				}
			}
			if class, _ := p.Attr("class"); class == "card-text" {
				return
			}
			parts = append(parts, text)
		})
	}

	return strings.Join(parts, " ")
}

// decompressResponse 根据Content-Encoding头部解压响应体
// 支持 gzip, deflate, br (Brotli) 三种压缩格式
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		defer reader.Close()
		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip读取失败: %w", err)
		}
		return decompressed, nil

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()
		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("deflate读取失败: %w", err)
		}
		return decompressed, nil

	case "br":
		reader := brotli.NewReader(bytes.NewReader(body))
		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("brotli读取失败: %w", err)
		}
		return decompressed, nil

	case "", "identity":
		return body, nil

	default:
		return nil, fmt.Errorf("不支持的压缩编码: %s", encoding)
	}
}
