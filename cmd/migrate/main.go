// Commande migrate: applique ou annule les migrations SQL de db/migrations.
//
// Usage:
//
//	migrate up            applique toutes les migrations en attente
//	migrate down          annule la dernière migration
//	migrate version       affiche la version courante du schéma
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/ramzib/dukan-pos/pkg/config"
	"github.com/ramzib/dukan-pos/pkg/logger"
)

const sourceURL = "file://db/migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := migrate.New(sourceURL, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("initialisation des migrations")
	}
	defer m.Close()

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("application des migrations")
		}
		log.Info().Msg("schéma à jour")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("annulation de la migration")
		}
		log.Info().Msg("dernière migration annulée")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("lecture de la version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("version du schéma")
	default:
		fmt.Fprintf(os.Stderr, "commande inconnue: %s (up | down | version)\n", cmd)
		os.Exit(2)
	}
}
