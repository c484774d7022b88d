package main

import (
	"context"
	"log"
	"os"

	"github.com/bookgenie/bookgenie-cli/internal/buildinfo"
	"github.com/bookgenie/bookgenie-cli/internal/client/cli"
	"github.com/bookgenie/bookgenie-cli/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
