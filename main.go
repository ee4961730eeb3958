package main

import (
	"os"

	"github.com/konverty/backend/internal/cli"
	"github.com/rs/zerolog/log"
)

// @title			konverty
// @description	Monthly envelope budget that reconciles daily expenses against its checklists
// @BasePath		/
func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("konverty")
		os.Exit(1)
	}
}
