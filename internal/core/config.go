// Package core 承载配置加载与爬取-落盘流水线的编排
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/cursofind/internal/compare"
	"github.com/RecoveryAshes/cursofind/internal/models"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Crawl    models.CrawlConfig `mapstructure:"crawl"`
	Logging  LoggingConfig      `mapstructure:"logging"`
	Output   OutputConfig       `mapstructure:"output"`
	Search   SearchConfig       `mapstructure:"search"`
	Semantic SemanticConfig     `mapstructure:"semantic"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 输出文件配置
type OutputConfig struct {
	DictFile  string `mapstructure:"dict_file"`  // 课程字典JSON
	IndexFile string `mapstructure:"index_file"` // 配对索引CSV
	DBFile    string `mapstructure:"db_file"`    // SQLite镜像
	ReportDir string `mapstructure:"report_dir"` // 爬取报告目录
}

// SearchConfig 检索配置
type SearchConfig struct {
	MaxResults int     `mapstructure:"max_results"`
	MinScore   float64 `mapstructure:"min_score"`
	Method     string  `mapstructure:"method"`
}

// SemanticConfig 语义算法配置
// 类别表可在配置文件中整体覆盖,缺省时使用内置类别
type SemanticConfig struct {
	Categories []compare.Category `mapstructure:"categories"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 配置搜索路径
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cursofind"))
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件不存在时使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 爬取配置默认值
	v.SetDefault("crawl.seed_url", "https://educacionvirtual.javeriana.edu.co/nuestros-programas-nuevo")
	v.SetDefault("crawl.domain", "educacionvirtual.javeriana.edu.co")
	v.SetDefault("crawl.max_pages", 30)
	v.SetDefault("crawl.min_words", 3)
	v.SetDefault("crawl.wait_time", 10)
	v.SetDefault("crawl.user_agent", "cursofind/1.0 (+https://github.com/RecoveryAshes/cursofind)")
	v.SetDefault("crawl.fetch_desc", true)

	// 日志配置默认值
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	// 输出配置默认值
	v.SetDefault("output.dict_file", "curso.json")
	v.SetDefault("output.index_file", "indice.csv")
	v.SetDefault("output.db_file", "cursos.db")
	v.SetDefault("output.report_dir", "reports")

	// 检索配置默认值
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.min_score", 0.0)
	v.SetDefault("search.method", "smart")
}

// Categories 返回语义类别表,配置未覆盖时回退到内置类别
func (c *Config) Categories() []compare.Category {
	if len(c.Semantic.Categories) > 0 {
		return c.Semantic.Categories
	}
	return compare.DefaultCategories()
}

// MergeCrawlFlags 合并crawl子命令的命令行参数
// 命令行参数优先于配置文件
func (c *Config) MergeCrawlFlags(seedURL, domain string, maxPages int) {
	if seedURL != "" {
		c.Crawl.SeedURL = seedURL
	}
	if domain != "" {
		c.Crawl.Domain = domain
	}
	if maxPages > 0 {
		c.Crawl.MaxPages = maxPages
	}
}
