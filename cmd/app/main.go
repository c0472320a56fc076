package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"deliverybroker/cmd"
	"deliverybroker/internal/adapters/out/kafka"
	"deliverybroker/internal/adapters/out/postgres/accountrepo"
	"deliverybroker/internal/adapters/out/postgres/deliveryrepo"
	"deliverybroker/internal/adapters/out/postgres/outboxrepo"
	"deliverybroker/internal/adapters/out/redis/inroutecache"
	"deliverybroker/internal/adapters/out/redis/notifier"
	"deliverybroker/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})

	publisher, err := kafka.NewSaramaEventPublisher([]string{configs.KafkaHost})
	if err != nil {
		log.Fatalf("Failed to connect to Kafka: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(
		gormDB,
		inroutecache.NewRedisInRouteCache(redisClient),
		notifier.NewRedisNotifier(redisClient),
		publisher,
	)

	jobManager := jobs.NewJobManager(
		app.CreateDispatchOutboxCommandHandler(),
		app.CreateRebuildCacheCommandHandler(),
		slog.Default(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:  goDotEnvVariable("REDIS_ADDR"),
		KafkaHost:  goDotEnvVariable("KAFKA_HOST"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&accountrepo.AccountDTO{},
		&outboxrepo.MessageDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
