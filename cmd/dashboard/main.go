package main

import (
	"fmt"
	"os"

	"goeda/internal"
	"goeda/internal/config"
	"goeda/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := ui.NewApp(log, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
