package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/saeidalz13/battleship-engine/api"
	"github.com/saeidalz13/battleship-engine/db"
	"github.com/saeidalz13/battleship-engine/db/sqlc"
)

const defaultAgentDelayMs = 1000

type config struct {
	stage      string
	port       int
	agentDelay time.Duration
	logLevel   log.Level
	psqlUrl    string
}

// Reads the server settings from the environment.
func loadConfig() (config, error) {
	cfg := config{
		stage:      os.Getenv("STAGE"),
		agentDelay: time.Duration(defaultAgentDelayMs) * time.Millisecond,
		logLevel:   log.InfoLevel,
		psqlUrl:    os.Getenv("DATABASE_URL"),
	}

	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		level, err := log.ParseLevel(levelEnv)
		if err != nil {
			return config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", levelEnv, err)
		}
		cfg.logLevel = level
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		return config{}, fmt.Errorf("PORT must be a number: %w", err)
	}
	cfg.port = port

	if delayEnv := os.Getenv("AGENT_DELAY_MS"); delayEnv != "" {
		delayMs, err := strconv.Atoi(delayEnv)
		if err != nil {
			return config{}, fmt.Errorf("AGENT_DELAY_MS must be a number: %w", err)
		}
		cfg.agentDelay = time.Duration(delayMs) * time.Millisecond
	}

	return cfg, nil
}

func run() error {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.logLevel)

	opts := []api.Option{
		api.WithPort(cfg.port),
		api.WithStage(cfg.stage),
		api.WithAgentDelay(cfg.agentDelay),
	}

	// Analytics are optional
	if cfg.psqlUrl != "" {
		postgresDb := db.MustConnectToDb(cfg.psqlUrl, db.DefaultMigrationDir)
		defer postgresDb.Close()
		opts = append(opts, api.WithQuerier(sqlc.New(postgresDb)))
	}

	server, err := api.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	return server.ListenAndServe()
}

func main() {
	if err := run(); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
