package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/viper"

	"userbase/internal/client"
	"userbase/internal/client/cli"
)

func main() {
	viper.AutomaticEnv()

	// The client has no sensible default origin; require it up front.
	baseURL := viper.GetString("API_BASE_URL")
	if baseURL == "" {
		log.Fatal("API_BASE_URL environment variable is required")
	}

	api := client.NewAPI(baseURL)
	store := client.NewStore(api)

	app := cli.NewApp(store, os.Stdin, os.Stdout)
	app.Run(context.Background())
}
