package main

import (
	"context"
	"log"
	"os"

	"impulselog/internal/buildinfo"
	"impulselog/internal/client/cli"
	"impulselog/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
