// ipcalc 是 IPv4/IPv6 地址计算命令行工具。
//
// 用法:
//
//	ipcalc [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-o, --output   输出格式 (text/json, 默认: text)
//	-c, --config   配置文件路径 (YAML 或 JSON)
//	-v, --verbose  输出调试日志到 stderr
//
// 命令:
//
//	v4 <addr[/len]> | v4 <addr> <mask>   计算 IPv4 地址块属性
//	v6 <addr[/len]>                      计算 IPv6 地址块属性
//	expand <addr>                        IPv6 全长展开形式
//	compress <addr>                      IPv6 RFC 5952 规范压缩形式
//	classify <addr>                      地址空间分类与特殊用途名称
//	inrange <addr> <prefix>              判断地址是否在前缀内
//
// 退出码:
//
//	0: 命令执行成功（inrange 命令: 地址在前缀内）
//	1: 输入无效或计算失败（inrange 命令: 地址在前缀外）
//	2: 参数错误（缺少参数、未知命令等）
//
// 示例:
//
//	ipcalc v4 192.168.1.10/24             # 计算块属性
//	ipcalc v4 172.16.5.4 255.255.0.0      # 地址+点分掩码双参数形式
//	ipcalc -o json v6 2001:db8::1/64      # JSON 输出
//	ipcalc compress 2001:0db8:0:0:0:0:0:1 # → 2001:db8::1
//	ipcalc inrange 10.1.2.3 10.0.0.0/8    # 退出码报告结果
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "ipcalc",
		Usage:   "IPv4/IPv6 地址计算工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "输出格式 (text/json)",
				Value:   outputText,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径 (YAML 或 JSON)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "输出调试日志到 stderr",
			},
		},
		Before:         setupFromConfig,
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"ipkit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

// setupFromConfig 加载配置文件并初始化日志。
// 命令行显式给出的 flag 优先于配置文件中的同名项。
func setupFromConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if !cmd.IsSet("output") && cfg.Output != "" {
		if err := cmd.Set("output", cfg.Output); err != nil {
			return ctx, err
		}
	}
	if !cmd.IsSet("verbose") && cfg.Verbose {
		if err := cmd.Set("verbose", "true"); err != nil {
			return ctx, err
		}
	}

	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return ctx, nil
}

func run(args []string) int {
	app := createApp()

	if err := app.Run(context.Background(), args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr.msg)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
