package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"chatshop.GO/config"
	"chatshop.GO/model/migrations"
)

var dbMigrateCmd = &cobra.Command{
	Use:       "db:migrate [up|down] [steps]",
	Short:     "Apply or roll back the MySQL catalog schema",
	Args:      cobra.RangeArgs(0, 2),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) > 0 {
			direction = args[0]
		}
		if direction != "up" && direction != "down" {
			return errors.Errorf("unknown direction %q (want up or down)", direction)
		}
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "steps %q", args[1])
			}
			steps = n
		}

		db, err := config.NewDB()
		if err != nil {
			return errors.Wrap(err, "connect database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		m, err := migrations.NewMySQL(sqlDB)
		if err != nil {
			return err
		}

		if direction == "up" {
			err = migrations.Up(m)
		} else {
			err = migrations.Down(m, steps)
		}
		if err != nil {
			return err
		}
		version, dirty, _ := m.Version()
		fmt.Fprintf(cmd.OutOrStdout(), "Migration %s done, version %d dirty=%t\n", direction, version, dirty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbMigrateCmd)
}
