package main

import (
	"log"

	_ "studtrack/docs"
	"studtrack/internal/config"
	"studtrack/internal/handlers"
	"studtrack/internal/storage"

	"studtrack/internal/activity"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @Title			Учёт активностей студентов
// @Description	Планирование, начало и завершение активностей студентов по заданиям
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка загрузки конфигурации: ", err.Error())
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	db, err := storage.Connect(cfg)
	if err != nil {
		logger.Fatal("Ошибка подключения к базе данных", zap.Error(err))
	}
	logger.Info("Подключение к базе данных успешно")

	if err := storage.Migrate(db); err != nil {
		logger.Fatal("Ошибка при миграции", zap.Error(err))
	}

	store := storage.NewGormStore(db)
	cache := storage.NewRedisClient(cfg.RedisAddr)
	if cache == nil {
		logger.Info("REDIS_ADDR не задан, кэш списков отключён")
	}

	service := activity.NewService(store, store, store)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.RegisterRoutes(r,
		handlers.NewCourseHandler(store, logger),
		handlers.NewTaskHandler(store, logger),
		handlers.NewStudentHandler(store, logger),
		handlers.NewActivityHandler(service, cache, logger),
	)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}

// newLogger настраивает zap в зависимости от окружения
func newLogger(env string) *zap.Logger {
	var zcfg zap.Config
	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.OutputPaths = []string{"stdout"}

	logger, err := zcfg.Build()
	if err != nil {
		panic("не удалось создать логгер: " + err.Error())
	}
	return logger
}
