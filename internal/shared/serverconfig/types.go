package serverconfig

import "time"

type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Game      GameConfig      `yaml:"game" mapstructure:"game"`
	Amenity   AmenityConfig   `yaml:"amenity" mapstructure:"amenity"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	MySQL     MySQLConfig     `yaml:"mysql" mapstructure:"mysql"`
	MongoDB   MongoDBConfig   `yaml:"mongodb" mapstructure:"mongodb"`
	Spectator SpectatorConfig `yaml:"spectator" mapstructure:"spectator"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type GameConfig struct {
	Player          string        `yaml:"player" mapstructure:"player"`
	Map             string        `yaml:"map" mapstructure:"map"`   // 为空时随机生成
	Seed            int64         `yaml:"seed" mapstructure:"seed"` // 0 表示按时间取种子
	AskTimeout      time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
	FlushEvery      time.Duration `yaml:"flush_every" mapstructure:"flush_every"`
	SavesDir        string        `yaml:"saves_dir" mapstructure:"saves_dir"`
	MapsDir         string        `yaml:"maps_dir" mapstructure:"maps_dir"`
	LeaderboardFile string        `yaml:"leaderboard_file" mapstructure:"leaderboard_file"`
	NodeID          int64         `yaml:"node_id" mapstructure:"node_id"`
}

type AmenityConfig struct {
	NPCCount     int           `yaml:"npc_count" mapstructure:"npc_count"`
	NPCIdleMin   time.Duration `yaml:"npc_idle_min" mapstructure:"npc_idle_min"`
	NPCIdleMax   time.Duration `yaml:"npc_idle_max" mapstructure:"npc_idle_max"`
	WaitTimeout  time.Duration `yaml:"wait_timeout" mapstructure:"wait_timeout"`
	FashionBonus time.Duration `yaml:"fashion_bonus" mapstructure:"fashion_bonus"`
	Lodging      StationConfig `yaml:"lodging" mapstructure:"lodging"`
	Dining       StationConfig `yaml:"dining" mapstructure:"dining"`
	Grooming     StationConfig `yaml:"grooming" mapstructure:"grooming"`
}

type StationConfig struct {
	Capacity     int             `yaml:"capacity" mapstructure:"capacity"`
	NPCDurations []time.Duration `yaml:"npc_durations" mapstructure:"npc_durations"`
}

// StorageConfig 选择存档与排行榜的落地方式：file / mongodb / mysql / memory。
type StorageConfig struct {
	Saves       string `yaml:"saves" mapstructure:"saves"`
	Leaderboard string `yaml:"leaderboard" mapstructure:"leaderboard"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type SpectatorConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port"`
}
