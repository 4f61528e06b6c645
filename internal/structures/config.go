package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required|in:sqlite,postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// StorageConfig sizes the per-client key-value stores holding daily progress.
type StorageConfig struct {
	MemorySize int           `yaml:"memorySize" validate:"required|min:1"`
	TTL        time.Duration `yaml:"ttl" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type GameConfig struct {
	Timezone        string        `yaml:"timezone" validate:"required"`
	AttemptBudget   int           `yaml:"attemptBudget" validate:"required|min:1"`
	HintThreshold   int           `yaml:"hintThreshold" validate:"required|min:1"`
	HintStep        int           `yaml:"hintStep" validate:"required|min:1"`
	TransitionDelay time.Duration `yaml:"transitionDelay"`
}

type MultiplayerConfig struct {
	Rounds   int           `yaml:"rounds" validate:"required|min:1|max:3"`
	MatchTTL time.Duration `yaml:"matchTTL" validate:"required|min:1"`
}

type RateLimitConfig struct {
	RPS   int `yaml:"rps"`
	Burst int `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Persistence Persistence       `yaml:"persistence"`
	Logger      LoggerConfig      `yaml:"logger"`
	Database    DatabaseConfig    `yaml:"database"`
	Storage     StorageConfig     `yaml:"storage"`
	Cache       CacheConfig       `yaml:"cache"`
	Game        GameConfig        `yaml:"game"`
	Multiplayer MultiplayerConfig `yaml:"multiplayer"`
	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
