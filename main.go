package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/config"
	_ "medbook/docs"
	"medbook/internal/repository"
	"medbook/internal/service"
	"medbook/internal/storage"
	"medbook/internal/transport/rest"
	"medbook/pkg/database"
	"medbook/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title MedBook API
// @version 1.0
// @description API для записи на прием к врачу, медицинских карт и отзывов

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка вложений будет недоступна")
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
	})

	handler := rest.NewHandler(services, log, cfg)

	router := gin.Default()

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
