package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	HTTPAddr       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	RedisAddr      string
	SessionBackend string // "redis" or "memory"
	SessionTTL     time.Duration
	TelegramToken  string
	WebDir         string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	ttl := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			ttl = parsed
		}
	}

	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":3000"),
		DBHost:         getenv("DB_HOST", "127.0.0.1"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBUser:         getenv("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"),
		DBName:         getenv("DB_NAME", "todolist"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		SessionBackend: getenv("SESSION_BACKEND", "redis"),
		SessionTTL:     ttl,
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebDir:         getenv("WEB_DIR", "web"),
	}
}

// DSN builds the MySQL connection string. clientFoundRows makes affected-row
// counts report matched rows, which the item store's ownership checks rely on.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}
