package commands

import (
	"github.com/jhoicas/Recetario-api/internal/infrastructure/postgres"
)

// MigrateCmd aplica las migraciones embebidas.
type MigrateCmd struct {
	Direction string `help:"Dirección de la migración" default:"up" enum:"up,down"`
}

func (c *MigrateCmd) Run(g *Globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	if err := postgres.Migrate(cfg.DB.ConnectionString(), c.Direction); err != nil {
		return err
	}
	log.Info().Str("direction", c.Direction).Msg("migraciones aplicadas")
	return nil
}
