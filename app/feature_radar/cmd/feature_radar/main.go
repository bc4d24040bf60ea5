package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/config"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/engine"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/llm/factory"
	"github.com/iWorld-y/feature_radar/app/feature_radar/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "feature_radar",
		Short:        "Cluster customer feature requests into themes with an LLM",
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

type analyzeFlags struct {
	configPath string
	input      string
	column     string
	outDir     string
	showPrompt bool
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a CSV of feature requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "app/feature_radar/configs/config.yaml", "config path")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "CSV file with feature requests")
	cmd.Flags().StringVar(&f.column, "column", "", "column holding the requests (default from config, falls back to the first column)")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&f.showPrompt, "show-prompt", false, "print the prompt sent to the model")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runAnalyze(cmd *cobra.Command, f analyzeFlags) error {
	// 1. 加载配置
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}
	logger.Log.Info("启动需求分析...")

	ctx := context.Background()

	// 3. 初始化 LLM
	generator, err := factory.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	eng := engine.NewEngine(cfg, generator)

	// 4. 读取并分析
	in, err := os.Open(f.input)
	if err != nil {
		return fmt.Errorf("无法打开输入文件: %w", err)
	}
	defer in.Close()

	report, err := eng.Run(ctx, in, engine.RunOptions{Column: f.column})
	if err != nil {
		logger.Log.Errorf("分析失败: %v", err)
		return err
	}

	if f.showPrompt {
		fmt.Fprintln(cmd.OutOrStdout(), report.Prompt)
	}

	// 5. 输出
	outDir := cfg.Output.Dir
	if f.outDir != "" {
		outDir = f.outDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("无法创建输出目录: %w", err)
	}

	if err := writeFile(filepath.Join(outDir, "index.html"), func(w *os.File) error {
		return report.WriteHTML(w, filepath.Base(f.input))
	}); err != nil {
		return fmt.Errorf("生成 HTML 失败: %w", err)
	}

	if !report.Parsed {
		logger.Log.Warn("模型回复无法解析，原始回复如下")
		fmt.Fprintln(cmd.ErrOrStderr(), report.Raw)
		return nil
	}

	if err := writeFile(filepath.Join(outDir, "themes.csv"), func(w *os.File) error {
		return report.WriteCSV(w)
	}); err != nil {
		return fmt.Errorf("导出 CSV 失败: %w", err)
	}

	for _, s := range report.Scores {
		fmt.Fprintf(cmd.OutOrStdout(), "%-40s %d\n", s.Theme, s.Score)
	}
	logger.Log.Infof("✅ 分析完成: %s", outDir)
	return nil
}

func writeFile(path string, fn func(w *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
