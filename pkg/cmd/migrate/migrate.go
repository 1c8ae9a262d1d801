package migrate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/arjunakankipati/racing-stat-service-go/log"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/config"
	dbmigrate "github.com/arjunakankipati/racing-stat-service-go/pkg/db/migrate"
	"github.com/arjunakankipati/racing-stat-service-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}
	return cmd
}

func startMigration() error {
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	log.Info("Running database migrations")
	if err := dbmigrate.MigrateDB(config.DB); err != nil {
		return err
	}
	log.Info("Database schema is up to date")
	return nil
}
