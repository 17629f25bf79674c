package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	AMQPURL        string
	NotifyExchange string
	CookieSecure   bool
}

// Load reads settings from the environment, after merging a .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[warn] could not read .env: %v", err)
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DBDSN:          getEnv("DB_DSN", "foodonline.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"),
		LogFile:        getEnv("LOG_FILE", "./foodonline.log"),
		AMQPURL:        os.Getenv("AMQP_URL"), // empty: notifications go to the log
		NotifyExchange: getEnv("NOTIFY_EXCHANGE", "notifications_fanout"),
		CookieSecure:   getBool("COOKIE_SECURE", false),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s AMQP=%t NOTIFY_EXCHANGE=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AMQPURL != "", cfg.NotifyExchange)
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[warn] %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}
