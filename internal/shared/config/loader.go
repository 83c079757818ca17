package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Option 在读取前调整 viper（默认值、环境变量前缀等）。
type Option func(v *viper.Viper)

// WithDefaults 注册默认值，key 使用点号路径，例如 "amenity.lodging.capacity"。
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) {
		for k, val := range defaults {
			v.SetDefault(k, val)
		}
	}
}

// WithEnvPrefix 允许用 PREFIX_GAME_PLAYER 这样的环境变量覆盖配置。
func WithEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
}

// OnChange 在配置文件热更新并解码成功后回调。
func OnChange(fn func()) Option {
	return func(v *viper.Viper) {
		if fn == nil {
			return
		}
		changeHooksMu.Lock()
		changeHooks[v] = append(changeHooks[v], fn)
		changeHooksMu.Unlock()
	}
}

var (
	changeHooksMu sync.Mutex
	changeHooks   = map[*viper.Viper][]func(){}
)

func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

func load(configPath string, out any, opts ...Option) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	for _, opt := range opts {
		opt(v)
	}
	// 热更新只覆盖 out，已经按旧配置建好的驿站容量等不会重建
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.Unmarshal(out, decodeHook()); err != nil {
			fmt.Fprintf(os.Stderr, "config reload failed, file=%s err=%v\n", e.Name, err)
			return
		}
		changeHooksMu.Lock()
		hooks := append([]func(){}, changeHooks[v]...)
		changeHooksMu.Unlock()
		for _, fn := range hooks {
			fn()
		}
	})
	v.WatchConfig()
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out, decodeHook()); err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
