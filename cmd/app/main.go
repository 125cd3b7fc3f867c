package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/config"
	"dispatch/internal/core/ports"
	"dispatch/internal/notify"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.NewStore(startTime(configs))
	bus := notify.NewBus(logger)

	root := cmd.NewCompositionRoot(cfg, bus, createUnitOfWorkFactory(configs, logger), logger, newRand(configs))

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	envFile := pflag.String("env-file", ".env", "path to the env file")
	httpPort := pflag.String("http-port", "", "override HTTP_PORT")
	pflag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Warnf("No env file loaded from %s: %v", *envFile, err)
	}

	configs := cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
		StartTime:  os.Getenv("START_TIME"),
	}

	if seed := os.Getenv("SIM_SEED"); seed != "" {
		if _, err := fmt.Sscanf(seed, "%d", &configs.SimSeed); err != nil {
			log.Fatalf("Invalid SIM_SEED %q: %v", seed, err)
		}
	}

	if *httpPort != "" {
		configs.HTTPPort = *httpPort
	}
	if configs.HTTPPort == "" {
		configs.HTTPPort = "8080"
	}

	return configs
}

func startTime(configs cmd.Config) time.Time {
	if configs.StartTime == "" {
		return time.Now().UTC()
	}

	start, err := time.Parse(time.RFC3339, configs.StartTime)
	if err != nil {
		log.Fatalf("Invalid START_TIME %q: %v", configs.StartTime, err)
	}
	return start
}

func newRand(configs cmd.Config) *rand.Rand {
	if configs.SimSeed != 0 {
		return rand.New(rand.NewPCG(configs.SimSeed, configs.SimSeed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// createUnitOfWorkFactory picks the persistence backend: PostgreSQL when
// DB_HOST is set, the in-memory store otherwise.
func createUnitOfWorkFactory(configs cmd.Config, logger *slog.Logger) ports.UnitOfWorkFactory {
	if configs.DBHost == "" {
		logger.Info("no DB_HOST configured, using in-memory store")
		return memory.NewStore()
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("connected to PostgreSQL", "host", configs.DBHost, "database", configs.DBName)
	return postgres.NewGormUnitOfWorkFactory(db)
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()
	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
