package commands

import (
	"io"

	"github.com/spf13/cobra"

	"goldrun/internal/config"
	"goldrun/internal/migration"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
	out    io.Writer
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config, out io.Writer) *MigrateCommand {
	return &MigrateCommand{
		config: cfg,
		out:    out,
	}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	var migrator migration.Migrator = migration.NewHistoryMigrator(mc.config, migration.NewDatabaseManager(mc.config), mc.out)
	return migrator.Run(cmd.Context())
}
