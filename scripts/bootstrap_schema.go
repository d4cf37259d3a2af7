package main

// Script to create the database schema for the degen index pipeline.
// Every statement uses IF NOT EXISTS, so the script is safe to re-run
// against a live environment.
//
// Usage:
//   go run scripts/bootstrap_schema.go
//   go run scripts/bootstrap_schema.go --postgres=false   # ClickHouse only
//
// Connection settings come from the same environment variables the
// service reads (CLICKHOUSE_*, POSTGRES_*), including .env files.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"degenindex/internal/adapters/clickhouse"
	"degenindex/internal/adapters/config"
	"degenindex/internal/adapters/postgres"
	chrepo "degenindex/internal/repository/clickhouse"
	pgrepo "degenindex/internal/repository/postgres"
)

func main() {
	withClickHouse := flag.Bool("clickhouse", true, "Create ClickHouse tables")
	withPostgres := flag.Bool("postgres", true, "Create PostgreSQL tables")
	flag.Parse()

	fmt.Println("Degen Index Schema Bootstrap")
	fmt.Println("============================")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: could not load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *withClickHouse {
		if err := bootstrapClickHouse(ctx, cfg.ClickHouse); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *withPostgres {
		if err := bootstrapPostgres(ctx, cfg.Postgres); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("")
	fmt.Println("Schema ready")
}

func bootstrapClickHouse(ctx context.Context, cfg config.ClickHouseConfig) error {
	fmt.Printf("\nClickHouse (%s:%d/%s)\n", cfg.Host, cfg.Port, cfg.Database)

	client, err := clickhouse.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	defer client.Close()

	if err := client.Exec(ctx, chrepo.ClassifiedCommentsSchema); err != nil {
		return fmt.Errorf("create classified_comments: %w", err)
	}
	fmt.Println("  ✓ classified_comments")

	return nil
}

func bootstrapPostgres(ctx context.Context, cfg config.PostgresConfig) error {
	fmt.Printf("\nPostgreSQL (%s:%d/%s)\n", cfg.Host, cfg.Port, cfg.Database)

	client, err := postgres.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer client.Close()

	for _, stmt := range pgrepo.SchemaStatements {
		if _, err := client.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply postgres schema: %w", err)
		}
	}
	fmt.Println("  ✓ batch_summaries")
	fmt.Println("  ✓ degen_index")

	return nil
}
