package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/RecoveryAshes/cursofind/internal/compare"
	"github.com/RecoveryAshes/cursofind/internal/core"
	"github.com/RecoveryAshes/cursofind/internal/search"
	"github.com/RecoveryAshes/cursofind/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	logLevel   string
	quiet      bool

	// 爬取参数
	seedURL  string
	domain   string
	dbFile   string
	noMirror bool

	// 检索参数
	showStats bool

	// 比较参数
	compareMethod  string
	showMetrics    bool
	compareAllFlag bool
	similarTopK    int
)

var appConfig *core.Config

var rootCmd = &cobra.Command{
	Use:   "cursofind",
	Short: "课程目录爬取与检索工具",
	Long: `CursoFind - 课程目录爬取、倒排索引与相似度比较工具

从大学课程目录的种子页面出发做广度优先爬取,
把通过校验的课程归一化为词集合,产出课程字典(JSON)、
配对索引(CSV)与SQLite镜像,并在产物之上提供
多策略检索排序与五种算法的课程相似度比较。

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		appConfig = config

		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
			Quiet:      quiet,
		}
		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}
		return nil
	},
}

// crawlCmd 爬取子命令
// 用法: cursofind crawl <pages> [dict_file] [index_file]
var crawlCmd = &cobra.Command{
	Use:   "crawl <pages> [dict_file] [index_file]",
	Short: "爬取课程目录并产出字典与索引",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := strconv.Atoi(args[0])
		if err != nil || pages < 1 {
			return fmt.Errorf("页面数必须是正整数: %s", args[0])
		}

		dictPath := appConfig.Output.DictFile
		if len(args) > 1 {
			dictPath = args[1]
		}
		indexPath := appConfig.Output.IndexFile
		if len(args) > 2 {
			indexPath = args[2]
		}

		appConfig.MergeCrawlFlags(seedURL, domain, pages)
		if dbFile != "" {
			appConfig.Output.DBFile = dbFile
		}
		if noMirror {
			appConfig.Output.DBFile = ""
		}

		// Ctrl+C触发优雅终止,已收录的课程照常落盘统计
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pipeline := core.NewPipeline(appConfig)
		run, err := pipeline.RunCrawl(ctx, dictPath, indexPath)
		if err != nil {
			return err
		}

		fmt.Printf("爬取完成: %d页, %d个课程, %d个词, 耗时%.2f秒\n",
			run.Stats.PagesFetched, run.Stats.CoursesFound,
			run.Stats.WordsIndexed, run.Stats.Duration)
		return nil
	},
}

// searchCmd 检索子命令
// 用法: cursofind search "<query>" [dict_file] [index_file] [max_results] [method]
var searchCmd = &cobra.Command{
	Use:   "search \"<consulta>\" [dict_file] [index_file] [max_results] [method]",
	Short: "在课程索引上执行检索排序",
	Args:  cobra.RangeArgs(1, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		dictPath := appConfig.Output.DictFile
		if len(args) > 1 {
			dictPath = args[1]
		}
		indexPath := appConfig.Output.IndexFile
		if len(args) > 2 {
			indexPath = args[2]
		}
		maxResults := appConfig.Search.MaxResults
		if len(args) > 3 {
			n, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("结果数必须是整数: %s", args[3])
			}
			maxResults = n
		}
		methodName := appConfig.Search.Method
		if len(args) > 4 {
			methodName = args[4]
		}
		method, err := search.ParseMethod(methodName)
		if err != nil {
			return err
		}

		dict, idx, idf, err := core.LoadCorpus(dictPath, indexPath)
		if err != nil {
			return err
		}

		ranker := search.NewRanker(dict, idx, idf, nil)
		ranker.SetMinScore(appConfig.Search.MinScore)

		if showStats {
			cs := ranker.CorpusStats()
			fmt.Printf("语料: %d个课程, %d个词, %d条倒排配对, 平均每课程%.1f个词\n\n",
				cs.TotalCourses, cs.Vocabulary, cs.IndexEntries, cs.AvgWords)
		}

		results, stats := ranker.Search(query, method, maxResults)

		if len(results) == 0 {
			fmt.Printf("没有找到匹配 %q 的课程\n", query)
			return nil
		}

		fmt.Printf("找到 %d 个结果 (策略=%s, 候选=%d, 耗时=%.2fms):\n\n",
			len(results), method, stats.Candidates, stats.ElapsedMs)
		for i, r := range results {
			fmt.Printf("%2d. %s (得分: %.4f)\n    %s\n", i+1, r.Title, r.Score, r.URL)
		}
		return nil
	},
}

// compareCmd 比较子命令
// 用法: cursofind compare <curso_id_1> [curso_id_2] [dict_file] [index_file]
var compareCmd = &cobra.Command{
	Use:   "compare <curso_id_1> [curso_id_2] [dict_file] [index_file]",
	Short: "比较两门课程的相似度",
	Args:  cobra.RangeArgs(1, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := compare.ParseMethod(compareMethod)
		if err != nil {
			return err
		}

		// --similar模式只需要一个课程ID
		if similarTopK <= 0 && len(args) < 2 {
			return fmt.Errorf("需要两个课程ID (或使用 --similar N 检索相似课程)")
		}

		dictPath := appConfig.Output.DictFile
		if len(args) > 2 {
			dictPath = args[2]
		}
		indexPath := appConfig.Output.IndexFile
		if len(args) > 3 {
			indexPath = args[3]
		}

		dict, _, idf, err := core.LoadCorpus(dictPath, indexPath)
		if err != nil {
			return err
		}

		comparator := compare.NewComparator(dict, idf, appConfig.Categories(), compare.NewProcessProbe())

		if similarTopK > 0 {
			return runFindSimilar(comparator, args[0], method)
		}

		idA, idB := args[0], args[1]
		switch {
		case compareAllFlag:
			return runCompareAll(comparator, idA, idB)
		case showMetrics:
			return runMeasure(comparator, idA, idB, method)
		default:
			score, err := comparator.Compare(idA, idB, method)
			if err != nil {
				return err
			}
			fmt.Printf("相似度 [%s] %s vs %s: %.4f\n", method, idA, idB, score)
			return nil
		}
	},
}

// versionCmd 版本子命令
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cursofind %s (构建于 %s)\n", Version, BuildTime)
	},
}

func runFindSimilar(comparator *compare.Comparator, courseID string, method compare.Method) error {
	results, err := comparator.FindSimilar(courseID, similarTopK, method)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("字典中没有其它课程可与 %s 比较\n", courseID)
		return nil
	}

	fmt.Printf("与 %s 最相似的 %d 门课程 [%s]:\n\n", courseID, len(results), method)
	for i, r := range results {
		fmt.Printf("%2d. %s (相似度: %.4f)\n    %s\n", i+1, r.Title, r.Score, r.URL)
	}
	return nil
}

func runMeasure(comparator *compare.Comparator, idA, idB string, method compare.Method) error {
	m, err := comparator.Measure(idA, idB, method)
	if err != nil {
		return err
	}

	fmt.Printf("相似度度量 [%s] %s vs %s:\n", m.Method, idA, idB)
	fmt.Printf("  得分:       %.4f\n", m.Score)
	fmt.Printf("  词数:       %d vs %d\n", m.WordsA, m.WordsB)
	fmt.Printf("  共享词:     %d (并集 %d, 重叠率 %.4f)\n", m.SharedWords, m.UnionWords, m.Overlap)
	if len(m.TopShared) > 0 {
		fmt.Printf("  共享词样本: %v\n", m.TopShared)
	}
	fmt.Printf("  耗时:       %.3fms\n", m.ElapsedMs)
	fmt.Printf("  内存增量:   %d字节\n", m.MemoryDelta)
	return nil
}

func runCompareAll(comparator *compare.Comparator, idA, idB string) error {
	results, err := comparator.CompareAll(idA, idB)
	if err != nil {
		return err
	}

	fmt.Printf("五种算法并排比较 %s vs %s:\n\n", idA, idB)
	fmt.Printf("%-10s %10s %10s %12s %12s\n", "算法", "得分", "共享词", "耗时(ms)", "内存增量(B)")
	for _, method := range compare.AllMethods() {
		m := results[method]
		fmt.Printf("%-10s %10.4f %10d %12.3f %12d\n",
			method, m.Score, m.SharedWords, m.ElapsedMs, m.MemoryDelta)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "日志只写文件,不输出到控制台")

	crawlCmd.Flags().StringVar(&seedURL, "seed", "", "起始URL (默认取配置文件)")
	crawlCmd.Flags().StringVar(&domain, "domain", "", "允许的域名 (默认取配置文件)")
	crawlCmd.Flags().StringVar(&dbFile, "db", "", "SQLite镜像文件路径")
	crawlCmd.Flags().BoolVar(&noMirror, "no-db", false, "跳过SQLite镜像写入")

	searchCmd.Flags().BoolVar(&showStats, "stats", false, "显示语料统计")

	compareCmd.Flags().StringVarP(&compareMethod, "method", "m", "", "相似度算法 (jaccard, cosine, overlap, semantic, combined)")
	compareCmd.Flags().BoolVar(&showMetrics, "metrics", false, "显示性能度量")
	compareCmd.Flags().BoolVar(&compareAllFlag, "compare-all", false, "用全部五种算法并排比较")
	compareCmd.Flags().IntVar(&similarTopK, "similar", 0, "检索与课程最相似的前N门课程")

	rootCmd.AddCommand(crawlCmd, searchCmd, compareCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
