package config

import (
	"os"
	"path/filepath"
)

// DefaultPath 是相对工作目录向上查找的默认配置文件。
const DefaultPath = "configs/conf.yml"

// Load 读取配置到 out（必须是指针）。
//
// 约定：
//  1. path 为绝对路径时直接使用；
//  2. 相对路径先按工作目录拼接，不存在则从工作目录逐级向上查找；
//  3. 找不到配置文件直接 panic，进程不带配置启动没有意义。
func Load(path string, out any, opts ...Option) {
	if path == "" {
		path = DefaultPath
	}
	if filepath.IsAbs(path) {
		load(path, out, opts...)
		return
	}
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	load(findConfigUpward(curDir, path), out, opts...)
}

func findConfigUpward(startDir, rel string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + rel + " from: " + startDir)
		}
		dir = parent
	}
}
