package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/brocat-app/brocat/internal/client/cli"
	"github.com/brocat-app/brocat/internal/client/config"
	"github.com/brocat-app/brocat/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	logger := logging.New(os.Stderr, slog.LevelInfo)

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
