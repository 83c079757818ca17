package serverconfig

import (
	"time"

	"Stronghold/internal/shared/config"
)

var Conf Config

// Defaults 是配置文件缺省项的取值。
func Defaults() map[string]any {
	return map[string]any{
		"log.level":                      "info",
		"game.player":                    "player",
		"game.ask_timeout":               3 * time.Second,
		"game.flush_every":               3 * time.Second,
		"game.saves_dir":                 "saves",
		"game.maps_dir":                  "maps",
		"game.leaderboard_file":          "rating.csv",
		"game.node_id":                   1,
		"amenity.npc_count":              10,
		"amenity.npc_idle_min":           time.Second,
		"amenity.npc_idle_max":           5 * time.Second,
		"amenity.wait_timeout":           30 * time.Second,
		"amenity.fashion_bonus":          3 * time.Second,
		"amenity.lodging.capacity":       5,
		"amenity.lodging.npc_durations":  []string{"100ms", "300ms"},
		"amenity.dining.capacity":        12,
		"amenity.dining.npc_durations":   []string{"90s", "180s"},
		"amenity.grooming.capacity":      2,
		"amenity.grooming.npc_durations": []string{"1s", "3s"},
		"storage.saves":                  "file",
		"storage.leaderboard":            "file",
		"spectator.host":                 "127.0.0.1",
		"spectator.port":                 8089,
	}
}

// Load 读取 configs/conf.yml，STRONGHOLD_ 前缀的环境变量可覆盖同名配置。
// onChange 在文件热更新后调用；已启动的对局与驿站不受影响。
func Load(path string, onChange ...func()) {
	opts := []config.Option{config.WithDefaults(Defaults()), config.WithEnvPrefix("STRONGHOLD")}
	for _, fn := range onChange {
		opts = append(opts, config.OnChange(fn))
	}
	config.Load(path, &Conf, opts...)
}
