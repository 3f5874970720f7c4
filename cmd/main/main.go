package main

import (
	"log"
	"os"

	"github.com/BartekS5/csvmap/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("CSVMAP_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found, using system environment variables", envFile)
	}

	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
