package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	amqpadapter "dispatch/internal/adapters/out/amqp"
	"dispatch/internal/adapters/out/postgres/commissionrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/restaurantrepo"
	"dispatch/internal/broadcast"
	"dispatch/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	migrateDB(gormDB)

	var sinks []broadcast.Sink
	if configs.AmqpURL != "" {
		client, err := amqpadapter.Dial(configs.AmqpURL)
		if err != nil {
			log.Fatalf("Error connecting to rabbitmq: %v", err)
		}
		defer client.Close()
		sinks = append(sinks, amqpadapter.NewSnapshotPublisher(client))
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger, sinks...)

	jobManager := jobs.NewJobManager(root.Broadcaster(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:    goDotEnvVariable("AMQP_URL"),
	}
}

func goDotEnvVariable(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	// TranslateError maps unique-index violations to gorm.ErrDuplicatedKey,
	// which the settlement write relies on.
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&commissionrepo.RuleDTO{},
		&commissionrepo.SettlementDTO{},
		&restaurantrepo.RestaurantDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateTransitionOrderStatusCommandHandler(),
		root.CreateCreateCommissionRuleCommandHandler(),
		root.CreateUpdateCommissionRuleCommandHandler(),
		root.CreateDeleteCommissionRuleCommandHandler(),
		root.CreateGetDriverRouteQueryHandler(),
		root.CreateGetActiveRuleQueryHandler(),
		root.CreateQuoteCommissionQueryHandler(),
		root.Broadcaster(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
