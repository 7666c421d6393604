package crawler

import (
	"context"
	"errors"
	"testing"

	"github.com/RecoveryAshes/cursofind/internal/models"
)

// stubFetcher 测试用的页面抓取桩
type stubFetcher struct {
	pages      map[string]*Page
	descs      map[string]string
	fetchOrder []string
}

func (s *stubFetcher) Fetch(pageURL string) (*Page, error) {
	s.fetchOrder = append(s.fetchOrder, pageURL)
	page, ok := s.pages[pageURL]
	if !ok {
		return nil, errors.New("页面不存在")
	}
	return page, nil
}

func (s *stubFetcher) FetchDescription(courseURL string) (string, error) {
	desc, ok := s.descs[courseURL]
	if !ok {
		return "", errors.New("课程页不存在")
	}
	return desc, nil
}

func testConfig(maxPages int) models.CrawlConfig {
	return models.CrawlConfig{
		SeedURL:   "https://cursos.example.edu/oferta",
		Domain:    "example.edu",
		MaxPages:  maxPages,
		MinWords:  3,
		WaitTime:  10,
		UserAgent: "cursofind-test",
		FetchDesc: true,
	}
}

func TestCrawlerBFSOrder(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {
				URL: "https://cursos.example.edu/oferta",
				Links: []string{
					"https://cursos.example.edu/pagina-a",
					"https://cursos.example.edu/pagina-b",
				},
			},
			"https://cursos.example.edu/pagina-a": {
				URL:   "https://cursos.example.edu/pagina-a",
				Links: []string{"https://cursos.example.edu/pagina-c"},
			},
			"https://cursos.example.edu/pagina-b": {URL: "https://cursos.example.edu/pagina-b"},
			"https://cursos.example.edu/pagina-c": {URL: "https://cursos.example.edu/pagina-c"},
		},
	}

	c, err := NewCourseCrawler(testConfig(10), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}
	_, stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("爬取失败: %v", err)
	}

	// 广度优先: 先同层后下层
	wantOrder := []string{
		"https://cursos.example.edu/oferta",
		"https://cursos.example.edu/pagina-a",
		"https://cursos.example.edu/pagina-b",
		"https://cursos.example.edu/pagina-c",
	}
	if len(fetcher.fetchOrder) != len(wantOrder) {
		t.Fatalf("抓取次数不一致: got %v", fetcher.fetchOrder)
	}
	for i, u := range wantOrder {
		if fetcher.fetchOrder[i] != u {
			t.Errorf("抓取顺序[%d]错误: got %s, want %s", i, fetcher.fetchOrder[i], u)
		}
	}

	if !stats.FrontierDrained {
		t.Error("队列耗尽终止应标记FrontierDrained")
	}
	if stats.PagesFetched != 4 {
		t.Errorf("抓取页数错误: %d", stats.PagesFetched)
	}
}

func TestCrawlerPageBudget(t *testing.T) {
	// 自环链接保证队列永不耗尽
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {
				URL:   "https://cursos.example.edu/oferta",
				Links: []string{"https://cursos.example.edu/pagina-a"},
			},
			"https://cursos.example.edu/pagina-a": {
				URL:   "https://cursos.example.edu/pagina-a",
				Links: []string{"https://cursos.example.edu/pagina-b"},
			},
			"https://cursos.example.edu/pagina-b": {
				URL:   "https://cursos.example.edu/pagina-b",
				Links: []string{"https://cursos.example.edu/pagina-c"},
			},
		},
	}

	c, err := NewCourseCrawler(testConfig(2), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}
	_, stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("爬取失败: %v", err)
	}

	if stats.PagesFetched != 2 {
		t.Errorf("页面预算未生效: 抓取了%d页", stats.PagesFetched)
	}
	if stats.FrontierDrained {
		t.Error("预算耗尽终止不应标记FrontierDrained")
	}
}

func TestCrawlerExtractsCourses(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {
				URL: "https://cursos.example.edu/oferta",
				Blocks: []CourseBlock{
					{
						Title:       "Curso de Gestión de Proyectos",
						URL:         "https://cursos.example.edu/curso-gestion-proyectos",
						Description: "Metodologías ágiles para la planificación y ejecución de proyectos",
					},
					{
						// 描述为空且无法补抓,结构层应拒绝
						Title: "Curso Fantasma",
						URL:   "https://cursos.example.edu/curso-fantasma",
					},
					{
						// 词数不足,语义层应拒绝
						Title:       "XY",
						URL:         "https://cursos.example.edu/curso-xy",
						Description: "de la en",
					},
				},
			},
		},
		descs: map[string]string{},
	}

	c, err := NewCourseCrawler(testConfig(5), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}
	dict, stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("爬取失败: %v", err)
	}

	if stats.CoursesFound != 1 {
		t.Fatalf("收录课程数错误: %d", stats.CoursesFound)
	}
	if stats.RejectedPages != 2 {
		t.Errorf("拒绝计数错误: %d", stats.RejectedPages)
	}

	course, err := dict.Get("curso-gestion-proyectos")
	if err != nil {
		t.Fatalf("课程ID派生错误: %v", err)
	}
	if !course.HasWord("gestion") || !course.HasWord("proyectos") || !course.HasWord("agiles") {
		t.Errorf("课程词集合错误: %v", course.SortedWords())
	}
	if course.HasWord("de") || course.HasWord("curso") {
		t.Error("停用词不应进入词集合")
	}
}

func TestCrawlerDescriptionFallback(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {
				URL: "https://cursos.example.edu/oferta",
				Blocks: []CourseBlock{
					{
						Title: "Diplomado en Marketing Digital",
						URL:   "https://cursos.example.edu/diplomado-marketing",
					},
				},
			},
		},
		descs: map[string]string{
			"https://cursos.example.edu/diplomado-marketing": "Estrategias de publicidad y ventas en redes sociales",
		},
	}

	c, err := NewCourseCrawler(testConfig(5), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}
	dict, stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("爬取失败: %v", err)
	}

	if stats.DescFetched != 1 {
		t.Errorf("补抓计数错误: %d", stats.DescFetched)
	}
	course, err := dict.Get("diplomado-marketing")
	if err != nil {
		t.Fatalf("课程未收录: %v", err)
	}
	if !course.HasWord("publicidad") {
		t.Errorf("补抓的描述未参与建词: %v", course.SortedWords())
	}
}

func TestCrawlerFetchFailureContinues(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {
				URL: "https://cursos.example.edu/oferta",
				Links: []string{
					"https://cursos.example.edu/rota",
					"https://cursos.example.edu/viva",
				},
			},
			"https://cursos.example.edu/viva": {URL: "https://cursos.example.edu/viva"},
		},
	}

	c, err := NewCourseCrawler(testConfig(10), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}
	_, stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("单页失败不应中断爬取: %v", err)
	}

	if stats.FailedRequests != 1 {
		t.Errorf("失败计数错误: %d", stats.FailedRequests)
	}
	if stats.PagesFetched != 2 {
		t.Errorf("失败页不应计入预算: %d", stats.PagesFetched)
	}
}

func TestCrawlerCrossDomainFiltered(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {
				URL: "https://cursos.example.edu/oferta",
				Links: []string{
					"https://otra-universidad.com/cursos",
					"mailto:info@example.edu",
				},
			},
		},
	}

	c, err := NewCourseCrawler(testConfig(10), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}
	_, stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("爬取失败: %v", err)
	}

	if stats.PagesFetched != 1 {
		t.Errorf("跨域与邮箱链接不应入队: 抓取了%d页", stats.PagesFetched)
	}
}

func TestCrawlerContextCancel(t *testing.T) {
	fetcher := &stubFetcher{
		pages: map[string]*Page{
			"https://cursos.example.edu/oferta": {URL: "https://cursos.example.edu/oferta"},
		},
	}

	c, err := NewCourseCrawler(testConfig(10), fetcher, nil)
	if err != nil {
		t.Fatalf("创建爬取器失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("取消的context应返回context.Canceled, got %v", err)
	}
}

func TestFrontierDedup(t *testing.T) {
	f := NewFrontier("example.edu", "https://cursos.example.edu/a")

	if err := f.Push("https://cursos.example.edu/a"); err == nil {
		t.Error("重复入队应返回错误")
	}

	url, ok := f.Pop()
	if !ok || url != "https://cursos.example.edu/a" {
		t.Fatalf("Pop结果错误: %s %v", url, ok)
	}
	f.MarkVisited(url)

	if err := f.Push("https://cursos.example.edu/a"); err == nil {
		t.Error("已访问URL不应再次入队")
	}
	if _, ok := f.Pop(); ok {
		t.Error("空队列Pop应返回false")
	}
}

func TestValidatorLayers(t *testing.T) {
	v := NewPageValidator("example.edu", 3)

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"站内页面", "https://cursos.example.edu/curso-datos", false},
		{"以斜杠结尾", "https://cursos.example.edu/oferta/", false},
		{"HTML页面", "https://cursos.example.edu/curso.html", false},
		{"跨域", "https://otro.com/curso", true},
		{"相对路径", "/curso-datos", true},
		{"邮箱链接", "mailto:info@example.edu", true},
		{"PDF资源", "https://cursos.example.edu/folleto.pdf", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}

	var verr *models.ValidationError
	if err := v.ValidateStructure(CourseBlock{URL: "https://x.example.edu/c"}); !errors.As(err, &verr) {
		t.Error("结构校验失败应返回ValidationError")
	} else if verr.Layer != LayerStructural {
		t.Errorf("校验层标记错误: %s", verr.Layer)
	}

	words := map[string]bool{"datos": true, "redes": true}
	if err := v.ValidateSemantics("https://x.example.edu/c", words); err == nil {
		t.Error("词数不足应被语义层拒绝")
	}
	words["analisis"] = true
	if err := v.ValidateSemantics("https://x.example.edu/c", words); err != nil {
		t.Errorf("词数达标不应被拒绝: %v", err)
	}
}
