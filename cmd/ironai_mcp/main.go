// Package main runs the IronAI context MCP server over stdio (for local MCP clients).
// The same tools are mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/ironai/internal/config"
	"github.com/2beens/ironai/internal/db"
	"github.com/2beens/ironai/internal/logging"
	"github.com/2beens/ironai/internal/mcptools"
	"github.com/2beens/ironai/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

const version = "1.0.0"

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the protocol, so logs never go there
	if cfg.LogsPath != "" {
		logging.Setup(logging.LoggerSetupParams{
			LogFileName:   cfg.LogsPath,
			LogToStdout:   false,
			LogLevel:      cfg.LogLevel,
			LogFormatJSON: cfg.LogFormatJSON,
			LogMaxBackups: cfg.LogMaxBackups,
			Environment:   cfg.Environment,
		})
	} else {
		log.SetOutput(os.Stderr)
		log.SetLevel(logging.GetLevel(cfg.LogLevel))
	}

	ctx := context.Background()
	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	if err := server.ServeStdio(mcptools.NewServer(st, version)); err != nil {
		log.Errorf("serve stdio: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case store.BackendPostgres:
		dbParams := db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: os.Getenv("IRONAI_POSTGRES_PASS"),
		}
		if err := store.MigratePostgres(dbParams.ConnString()); err != nil {
			return nil, nil, err
		}
		dbPool, err := db.NewDBPool(ctx, dbParams)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPsqlStore(dbPool), dbPool.Close, nil
	case store.BackendSqlite:
		st, err := store.NewSqliteStore(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: os.Getenv("IRONAI_REDIS_PASS"),
		})
		return store.NewRedisStore(rdb, cfg.RedisMaxTxRetries), func() { _ = rdb.Close() }, nil
	}
}
