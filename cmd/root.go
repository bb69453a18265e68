package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bioref",
	Short: "biological reference schema tool",
	Example: `bioref db migrate
bioref organism create -b "Homo sapiens" -s human
bioref term import -f go-basic.obo
bioref gene create -o <organism-id> -e ENSG001 -n DMT1
bioref protein create -o <organism-id> -g <gene-id> -e ENSP001 -n DMT1-1 -u Q9NP59 --canonical
bioref annotate add -e <entity-id> -s cellular_component -t <term-id>
bioref link interaction add -a <entity-id> -b <entity-id>
bioref jobs run`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
