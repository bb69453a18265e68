package cmd

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := client.Migrate(); err != nil {
				logrus.Error(err)
				return
			}
			color.Green("schema migrated")
		},
	}

	return command
}
