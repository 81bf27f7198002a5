package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config хранит настройки приложения, загруженные из окружения
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string // пустая строка — кэш отключён
	Port       string
	Environment string
}

// Load загружает .env (если файл есть) и читает переменные окружения
func Load() (*Config, error) {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Файл .env не найден, используем переменные окружения")
		}
	}

	cfg := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		Port:        os.Getenv("PORT"),
		Environment: os.Getenv("ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("не заданы обязательные параметры базы данных (DB_HOST, DB_PORT, DB_USER, DB_NAME)")
	}

	return cfg, nil
}

// DSN собирает строку подключения к Postgres
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
