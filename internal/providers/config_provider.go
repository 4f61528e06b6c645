package providers

import (
	"carhoot/internal/structures"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

func setDefaults() {
	viper.SetDefault("webServer.host", "0.0.0.0")
	viper.SetDefault("webServer.port", 8080)
	viper.SetDefault("persistence.filePath", "/var/lib/carhoot/progress.dat")
	viper.SetDefault("persistence.saveInterval", time.Minute)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", 0644)
	viper.SetDefault("logger.dir", "/var/log/carhoot")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "carhoot.db")
	viper.SetDefault("storage.memorySize", 16)
	viper.SetDefault("storage.ttl", 24*time.Hour)
	viper.SetDefault("cache.ttl", 30*time.Second)
	viper.SetDefault("game.timezone", "UTC")
	viper.SetDefault("game.attemptBudget", 9)
	viper.SetDefault("game.hintThreshold", 5)
	viper.SetDefault("game.hintStep", 3)
	viper.SetDefault("game.transitionDelay", 800*time.Millisecond)
	viper.SetDefault("multiplayer.rounds", 3)
	viper.SetDefault("multiplayer.matchTTL", 6*time.Hour)
	viper.SetDefault("rateLimit.rps", 5)
	viper.SetDefault("rateLimit.burst", 10)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// a missing .env is the normal case outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")
	setDefaults()

	viper.BindEnv("logger.level", "CARHOOT_LOG_LEVEL")
	viper.BindEnv("logger.dir", "CARHOOT_LOG_DIR")
	viper.BindEnv("webServer.port", "CARHOOT_PORT")
	viper.BindEnv("database.driver", "CARHOOT_DB_DRIVER")
	viper.BindEnv("database.dsn", "CARHOOT_DB_DSN")
	viper.BindEnv("persistence.filePath", "CARHOOT_DATA_FILE")
	viper.BindEnv("persistence.saveInterval", "CARHOOT_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "CARHOOT_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CARHOOT_CACHE_SIZE")
	viper.BindEnv("game.timezone", "CARHOOT_TIMEZONE")
	viper.BindEnv("game.attemptBudget", "CARHOOT_ATTEMPT_BUDGET")
	viper.BindEnv("metrics.enabled", "CARHOOT_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Carhoot"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
