// approvalctl tareas de operador del flujo de aprobación: migraciones, datos de prueba,
// enlaces firmados y reenvío del aviso de nueva solicitud.
package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/Recetario-api/cmd/approvalctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Migrate     commands.MigrateCmd     `cmd:"" help:"Aplicar migraciones del esquema"`
		Seed        commands.SeedCmd        `cmd:"" help:"Crear un admin y una empresa pending de prueba"`
		Links       commands.LinksCmd       `cmd:"" help:"Imprimir los enlaces firmados de una empresa"`
		NotifyAdmin commands.NotifyAdminCmd `cmd:"" name:"notify-admin" help:"Enviar al admin el aviso de nueva solicitud"`
		Debug       bool                    `help:"Logs en nivel debug."`
		Version     kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("approvalctl"),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
