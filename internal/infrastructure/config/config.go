package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Telegram TelegramConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=staffing_backoffice"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// TelegramConfig identifies the provider bot. BotUsername feeds the
// candidate deep link; without it invite generation reports a
// configuration error instead of producing a broken link.
type TelegramConfig struct {
	BotToken    string        `env:"TELEGRAM_BOT_TOKEN"`
	BotUsername string        `env:"TELEGRAM_BOT_USERNAME"`
	APIBaseURL  string        `env:"TELEGRAM_API_BASE_URL, default=https://api.telegram.org"`
	SendTimeout time.Duration `env:"TELEGRAM_SEND_TIMEOUT, default=8s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
