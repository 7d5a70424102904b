package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"rental/cmd"
	rentalhttp "rental/internal/adapters/in/http"
	"rental/internal/adapters/out/postgres"
	"rental/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := connectDB(configs)
	if err := postgres.Migrate(context.Background(), gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		DBHost:          envOrDefault("DB_HOST", "localhost"),
		DBPort:          envOrDefault("DB_PORT", "5432"),
		DBUser:          envOrDefault("DB_USER", "postgres"),
		DBPassword:      envOrDefault("DB_PASSWORD", "postgres"),
		DBName:          envOrDefault("DB_NAME", "rental"),
		DBSslMode:       envOrDefault("DB_SSLMODE", "disable"),
		DisplayTimezone: envOrDefault("DISPLAY_TIMEZONE", "UTC"),
		SweepCronSpec:   envOrDefault("SWEEP_CRON", jobs.DefaultSweepCronSpec),
	}
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func connectDB(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		app.CreateSweepOverdueOrdersCommandHandler(),
		configs.SweepCronSpec,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	displayLocation, err := time.LoadLocation(configs.DisplayTimezone)
	if err != nil {
		log.Fatalf("Error loading display timezone %q: %v", configs.DisplayTimezone, err)
	}

	server := rentalhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateEditOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateMarkOrderPaidCommandHandler(),
		app.CreateFinishOrderCommandHandler(),
		app.CreateDeliverOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateSuggestTimeSlotsQueryHandler(),
		displayLocation,
	)

	validator, err := rentalhttp.NewOpenAPIValidator()
	if err != nil {
		log.Fatalf("Error building OpenAPI validator: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(validator)

	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
