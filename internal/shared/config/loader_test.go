package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Name  string        `mapstructure:"name"`
	Every time.Duration `mapstructure:"every"`
	Tags  []string      `mapstructure:"tags"`
	Cap   int           `mapstructure:"cap"`
}

func TestLoad_解析时长与默认值(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yml")
	body := "name: demo\nevery: 1500ms\ntags: a,b\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write conf: %v", err)
	}

	var out sample
	Load(path, &out, WithDefaults(map[string]any{"cap": 12}))

	if out.Name != "demo" {
		t.Fatalf("期望 name=demo got=%q", out.Name)
	}
	if out.Every != 1500*time.Millisecond {
		t.Fatalf("期望 every=1.5s got=%v", out.Every)
	}
	if len(out.Tags) != 2 || out.Tags[1] != "b" {
		t.Fatalf("期望 tags=[a b] got=%v", out.Tags)
	}
	if out.Cap != 12 {
		t.Fatalf("期望默认 cap=12 got=%d", out.Cap)
	}
}

func TestLoad_文件不存在panic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("期望配置缺失时 panic")
		}
	}()
	var out sample
	Load(filepath.Join(t.TempDir(), "missing.yml"), &out)
}
