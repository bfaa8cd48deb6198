package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/ipkit/pkg/addr/xip"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，run() 统一映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 识别 urfave/cli 框架自身产生的参数错误。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	return strings.Contains(err.Error(), "flag provided but not defined")
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createV4Command(),
		createV6Command(),
		createExpandCommand(),
		createCompressCommand(),
		createClassifyCommand(),
		createInRangeCommand(),
	}
}

// createV4Command 创建 v4 子命令。
// 单参数形式接受 addr[/len]，双参数形式接受地址和点分掩码。
func createV4Command() *cli.Command {
	return &cli.Command{
		Name:      "v4",
		Usage:     "计算 IPv4 地址块属性",
		ArgsUsage: "<addr[/len]> | <addr> <mask>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdV4(cmd.String("output"), cmd.Args().Slice(), os.Stdout)
		},
	}
}

// createV6Command 创建 v6 子命令。
func createV6Command() *cli.Command {
	return &cli.Command{
		Name:      "v6",
		Usage:     "计算 IPv6 地址块属性",
		ArgsUsage: "<addr[/len]>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdV6(cmd.String("output"), cmd.Args().Slice(), os.Stdout)
		},
	}
}

// createExpandCommand 创建 expand 子命令。
func createExpandCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "IPv6 全长展开形式",
		ArgsUsage: "<addr>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdCanon(cmd.Args().Slice(), xip.Expand, os.Stdout)
		},
	}
}

// createCompressCommand 创建 compress 子命令。
func createCompressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "IPv6 RFC 5952 规范压缩形式",
		ArgsUsage: "<addr>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdCanon(cmd.Args().Slice(), xip.Compress, os.Stdout)
		},
	}
}

// createClassifyCommand 创建 classify 子命令。
func createClassifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "地址空间分类与特殊用途名称",
		ArgsUsage: "<addr>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdClassify(cmd.String("output"), cmd.Args().Slice(), os.Stdout)
		},
	}
}

// createInRangeCommand 创建 inrange 子命令。
func createInRangeCommand() *cli.Command {
	return &cli.Command{
		Name:      "inrange",
		Usage:     "判断地址是否在前缀内（在内: 退出码 0，在外: 退出码 1）",
		ArgsUsage: "<addr> <prefix>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdInRange(cmd.Args().Slice(), os.Stdout)
		},
	}
}

// property 是一行键值输出，保持声明顺序。
type property struct {
	key   string
	value string
}

// render 按输出格式写出属性表。
func render(w io.Writer, format string, props []property) error {
	switch format {
	case outputJSON:
		m := make(map[string]string, len(props))
		for _, p := range props {
			m[p.key] = p.value
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case outputText:
		for _, p := range props {
			fmt.Fprintf(w, "%-10s %s\n", p.key+":", p.value)
		}
		return nil
	default:
		return &usageError{msg: fmt.Sprintf("未知输出格式 %q (支持 text/json)", format)}
	}
}

// cmdV4 计算 IPv4 地址块属性。
func cmdV4(format string, args []string, w io.Writer) error {
	var v *xip.IPv4
	var err error
	switch len(args) {
	case 1:
		v, err = xip.ParseIPv4(args[0])
	case 2:
		v, err = xip.ParseIPv4Pair(args[0], args[1])
	default:
		return &usageError{msg: "v4 命令需要 <addr[/len]> 或 <addr> <mask>"}
	}
	if err != nil {
		return err
	}

	slog.Debug("computed v4 block", "prefix", v.Prefix())
	return render(w, format, []property{
		{"address", v.Address()},
		{"netmask", v.NetMask()},
		{"hostmask", v.HostMask()},
		{"network", v.Network()},
		{"prefix", v.Prefix()},
		{"netlength", v.NetLength()},
		{"offset", v.Offset()},
		{"broadcast", v.Broadcast()},
		{"first", v.First()},
		{"last", v.Last()},
		{"hostqty", v.HostQty()},
		{"name", v.Designation()},
	})
}

// cmdV6 计算 IPv6 地址块属性。
func cmdV6(format string, args []string, w io.Writer) error {
	if len(args) != 1 {
		return &usageError{msg: "v6 命令需要 <addr[/len]>"}
	}
	v, err := xip.ParseIPv6(args[0])
	if err != nil {
		return err
	}

	slog.Debug("computed v6 block", "prefix", v.Prefix())
	return render(w, format, []property{
		{"address", v.Address()},
		{"expanded", v.Expanded()},
		{"network", v.Network()},
		{"prefix", v.Prefix()},
		{"netlength", v.NetLength()},
		{"offset", v.Offset()},
		{"first", v.First()},
		{"last", v.Last()},
		{"hostqty", v.HostQty()},
		{"name", v.Designation()},
	})
}

// cmdCanon 执行 expand/compress 共用的单参数文本变换。
func cmdCanon(args []string, fn func(string) (string, error), w io.Writer) error {
	if len(args) != 1 {
		return &usageError{msg: "命令需要一个 IPv6 地址参数"}
	}
	out, err := fn(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// cmdClassify 输出地址版本、三分区分类与特殊用途名称。
func cmdClassify(format string, args []string, w io.Writer) error {
	if len(args) != 1 {
		return &usageError{msg: "classify 命令需要 <addr>"}
	}
	s := args[0]

	switch xip.TextVersion(s) {
	case xip.V4:
		addr, _, err := xip.ParseV4(s)
		if err != nil {
			return err
		}
		return render(w, format, []property{
			{"version", xip.V4.String()},
			{"category", xip.Category4(addr).String()},
			{"name", xip.Lookup4(addr)},
		})
	case xip.V6:
		addr, _, err := xip.ParseV6(s)
		if err != nil {
			return err
		}
		return render(w, format, []property{
			{"version", xip.V6.String()},
			{"category", xip.Category6(addr).String()},
			{"name", xip.Lookup6(addr)},
		})
	default:
		return fmt.Errorf("%w: %q 不是合法的 IPv4/IPv6 地址", xip.ErrFormat, s)
	}
}

// cmdInRange 判断地址是否在前缀内。
// 设计决策: 结果通过退出码报告（在内: 0，在外: 1），
// 使脚本无需解析输出即可分支。
func cmdInRange(args []string, w io.Writer) error {
	if len(args) != 2 {
		return &usageError{msg: "inrange 命令需要 <addr> <prefix>"}
	}
	addrText, prefix := args[0], args[1]

	var inside bool
	switch xip.TextVersion(addrText) {
	case xip.V4:
		addr, _, err := xip.ParseV4(addrText)
		if err != nil {
			return err
		}
		if inside, err = xip.InRange4(addr, prefix); err != nil {
			return err
		}
	case xip.V6:
		addr, _, err := xip.ParseV6(addrText)
		if err != nil {
			return err
		}
		if inside, err = xip.InRange6(addr, prefix); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q 不是合法的 IPv4/IPv6 地址", xip.ErrFormat, addrText)
	}

	if !inside {
		fmt.Fprintln(w, "false")
		return &exitError{code: 1}
	}
	fmt.Fprintln(w, "true")
	return nil
}
