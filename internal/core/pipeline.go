package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/cursofind/internal/crawler"
	"github.com/RecoveryAshes/cursofind/internal/index"
	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/RecoveryAshes/cursofind/internal/normalizer"
	"github.com/RecoveryAshes/cursofind/internal/utils"
)

// Pipeline 爬取-建索引-落盘流水线
type Pipeline struct {
	config *Config
	norm   *normalizer.Normalizer
}

// NewPipeline 创建流水线
func NewPipeline(config *Config) *Pipeline {
	return &Pipeline{
		config: config,
		norm:   normalizer.New(nil),
	}
}

// RunCrawl 执行完整的爬取流水线
// 爬取 -> 校验索引一致性 -> 保存字典与索引 -> 写SQLite镜像 -> 落盘运行报告
func (p *Pipeline) RunCrawl(ctx context.Context, dictPath, indexPath string) (*models.CrawlRun, error) {
	run, err := models.NewCrawlRun(p.config.Crawl)
	if err != nil {
		return nil, err
	}

	fetcher := crawler.NewCollyFetcher(p.config.Crawl.WaitTime, p.config.Crawl.UserAgent)
	c, err := crawler.NewCourseCrawler(p.config.Crawl, fetcher, p.norm)
	if err != nil {
		return nil, err
	}
	c.EnableProgress()

	dict, stats, err := c.Run(ctx)
	if err != nil {
		return nil, err
	}
	run.Complete(stats)

	if len(dict) == 0 {
		utils.Warnf("爬取未收录任何课程,跳过落盘")
		return run, nil
	}

	// 索引从完整字典一次性构建,落盘前校验一致性
	idx := index.Build(dict)
	if err := idx.Verify(dict); err != nil {
		return nil, fmt.Errorf("索引一致性校验失败: %w", err)
	}

	if err := index.SaveDictionary(dict, dictPath); err != nil {
		return nil, err
	}
	if err := index.SavePairs(dict, indexPath); err != nil {
		return nil, err
	}

	if p.config.Output.DBFile != "" {
		if err := p.mirrorToSQLite(dict); err != nil {
			// 镜像失败不作废已落盘的字典与索引
			utils.Errorf("SQLite镜像写入失败: %v", err)
		}
	}

	if err := p.writeReport(run); err != nil {
		utils.Warnf("运行报告写入失败: %v", err)
	}
	return run, nil
}

// mirrorToSQLite 将字典写入SQLite镜像表
func (p *Pipeline) mirrorToSQLite(dict models.CourseDictionary) error {
	mirror, err := index.OpenSQLiteMirror(p.config.Output.DBFile)
	if err != nil {
		return err
	}
	defer mirror.Close()

	_, err = mirror.Load(dict)
	return err
}

// writeReport 将运行报告落盘为JSON
func (p *Pipeline) writeReport(run *models.CrawlRun) error {
	if p.config.Output.ReportDir == "" {
		return nil
	}
	if err := os.MkdirAll(p.config.Output.ReportDir, 0755); err != nil {
		return err
	}

	data, err := run.ToJSON()
	if err != nil {
		return err
	}
	path := filepath.Join(p.config.Output.ReportDir, "crawl_"+run.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	utils.Infof("📄 运行报告已保存: %s", path)
	return nil
}

// LoadCorpus 加载检索与比较所需的语料
// 字典从JSON加载;索引文件存在时从CSV重建并校验,否则直接从字典构建
func LoadCorpus(dictPath, indexPath string) (models.CourseDictionary, index.InvertedIndex, index.IDFTable, error) {
	dict, err := index.LoadDictionary(dictPath)
	if err != nil {
		return nil, nil, nil, err
	}

	var idx index.InvertedIndex
	if _, statErr := os.Stat(indexPath); statErr == nil {
		idx, err = index.LoadPairs(indexPath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := idx.Verify(dict); err != nil {
			// 索引文件与字典不一致时以字典为准重建
			utils.Warnf("索引文件与字典不一致,已从字典重建: %v", err)
			idx = index.Build(dict)
		}
	} else {
		idx = index.Build(dict)
	}

	idf := index.BuildIDF(dict, idx)
	return dict, idx, idf, nil
}
