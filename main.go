package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/magicalhair/citas/internal/config"
	"github.com/magicalhair/citas/internal/console"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	application := &cli.App{
		Name:  "citas",
		Usage: "Magical Hair appointment booking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   config.DefaultPath,
				EnvVars: []string{"CITAS_CONFIG"},
				Usage:   "path to the YAML configuration file",
			},
		},
		Commands:       console.Commands(),
		DefaultCommand: "serve",
	}
	if err := application.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
