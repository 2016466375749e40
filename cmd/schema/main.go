// Command schema creates the users and mindfulness_sessions tables on the configured database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"mindful/internal/config"
	"mindful/internal/database"
	"mindful/internal/logger"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db := database.New(cfg.Database, log)
	defer db.Close()

	if err := database.InitializeSchema(ctx, db); err != nil {
		log.Error("Schema initialization failed", "driver", cfg.Database.Driver, "error", err)
		db.Close()
		os.Exit(1)
	}

	log.Info("Schema initialized", "driver", cfg.Database.Driver, "database", cfg.Database.Name)
}
