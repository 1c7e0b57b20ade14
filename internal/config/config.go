package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath      string
	ServerPort  string
	LogLevel    string
	AdminToken  string
	BackupDir   string
	PlayerAName string
	PlayerBName string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:      getEnv("DB_PATH", "tracker.db"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),
		BackupDir:   getEnv("BACKUP_DIR", "backups"),
		PlayerAName: getEnv("PLAYER_A_NAME", "Player A"),
		PlayerBName: getEnv("PLAYER_B_NAME", "Player B"),
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("backup_dir", cfg.BackupDir).
		Str("player_a", cfg.PlayerAName).
		Str("player_b", cfg.PlayerBName).
		Bool("admin_enabled", cfg.AdminToken != "").
		Msg("configuration loaded")

	return cfg, nil
}

// PlayerName resolves a party key ("player_a"/"player_b") to its display name.
func (c *Config) PlayerName(party string) string {
	if party == "player_b" {
		return c.PlayerBName
	}
	return c.PlayerAName
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
