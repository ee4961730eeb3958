package cli

import (
	"fmt"
	"strconv"

	"github.com/konverty/backend/internal/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database and list the applied data migrations",
		Long: `Migrates the schema, seeds a new database with the default budget and applies
all pending data migrations. The server does the same on startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dataDir == "" {
				dataDir = defaultDataDir
				if c, err := loadConfig(); err == nil {
					dataDir = c.DataDir
				}
			}

			err := connect(dataDir)
			if err != nil {
				return err
			}
			defer disconnect()

			var applied []models.DataMigration
			err = models.DB.Order("version ASC").Find(&applied).Error
			if err != nil {
				return err
			}

			data := pterm.TableData{{"Version", "Name", "Applied at"}}
			for _, m := range applied {
				data = append(data, []string{strconv.Itoa(m.Version), m.Name, m.AppliedAt.Format("2006-01-02 15:04:05")})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of the database, overrides DATA_DIR")

	return cmd
}
