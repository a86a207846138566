// Package commands subcomandos de approvalctl.
package commands

import (
	"fmt"

	"github.com/jhoicas/Recetario-api/pkg/config"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

// Globals flags compartidos por todos los subcomandos.
type Globals struct {
	Debug   bool
	Version string
}

// load lee la configuración del proceso y arma el logger.
func (g *Globals) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	level := cfg.App.LogLevel
	if g.Debug {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level})
	return cfg, log, nil
}
