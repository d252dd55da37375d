package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/lawlink/internal/buildinfo"
	"github.com/dmitrijs2005/lawlink/internal/client/cli"
	"github.com/dmitrijs2005/lawlink/internal/client/config"
	"github.com/dmitrijs2005/lawlink/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewConsole(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
