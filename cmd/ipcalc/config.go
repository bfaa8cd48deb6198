package main

import (
	"fmt"
	"os"
	"path/filepath"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// cliConfig 是配置文件支持的全局选项子集。
type cliConfig struct {
	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`
}

// loadConfig 加载 YAML/JSON 配置文件，路径为空时返回零值配置。
// 按扩展名选择解析器，未知扩展名按 YAML 处理（YAML 是 JSON 的超集）。
func loadConfig(path string) (cliConfig, error) {
	var cfg cliConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var parser koanf.Parser = kyaml.Parser()
	if filepath.Ext(path) == ".json" {
		parser = kjson.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return cfg, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("配置文件 %s 结构不匹配: %w", path, err)
	}
	return cfg, nil
}
