package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SlpAus/impact-report-backend/internal/platform/config"
	"github.com/SlpAus/impact-report-backend/internal/platform/logging"
	"github.com/SlpAus/impact-report-backend/internal/platform/startup"
	"github.com/SlpAus/impact-report-backend/internal/seed"
	"github.com/spf13/cobra"
)

var (
	flagConfigDir string
	flagReplace   bool
)

var rootCmd = &cobra.Command{
	Use:   "seed <content.yaml>",
	Short: "把 YAML 内容文件导入配置的内容存储",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
	// 参数错误时才打印用法，导入失败只打印错误
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfigDir, "config-dir", "", "config.yaml 所在目录 (默认: ./config 与 .)")
	rootCmd.Flags().BoolVar(&flagReplace, "replace", false, "导入前删除相同 Component/ID 或 name 的旧记录")
}

func run(cmd *cobra.Command, args []string) error {
	var paths []string
	if flagConfigDir != "" {
		paths = append(paths, flagConfigDir)
	}
	cfg, err := config.LoadConfig(paths...)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("无法打开内容文件: %w", err)
	}
	defer f.Close()

	file, err := seed.Load(f)
	if err != nil {
		return err
	}

	repo, err := startup.OpenRepository(cfg.Database, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	sum, err := seed.Apply(context.Background(), repo, file, flagReplace, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "导入完成: %d pictures, %d texts, %d locations (替换 %d 条旧记录)\n",
		sum.Pictures, sum.Texts, sum.Locations, sum.Replaced)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
