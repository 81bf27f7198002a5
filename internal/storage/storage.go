// Package storage содержит подключение к Postgres и реализации хранилищ.
package storage

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studtrack/internal/config"
	"studtrack/internal/models"
)

// Connect открывает подключение к базе данных и возвращает его.
// Подключение передаётся зависимостям явно, глобального состояния нет.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate выполняет автомиграцию всех моделей
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Course{}, &models.Task{}, &models.Student{}, &models.Activity{})
}

// NewRedisClient создаёт клиент Redis для кэша списков.
// Пустой адрес означает, что кэш отключён — возвращается nil.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
}
