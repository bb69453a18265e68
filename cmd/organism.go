package cmd

import (
	"github.com/emrgen/bioref"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var organismCmd = &cobra.Command{
	Use:   "organism",
	Short: "organism commands",
}

func init() {
	rootCmd.AddCommand(organismCmd)
	organismCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	organismCmd.AddCommand(createOrganismCmd())
	organismCmd.AddCommand(getOrganismCmd())
	organismCmd.AddCommand(listOrganismCmd())
	organismCmd.AddCommand(updateOrganismCmd())
	organismCmd.AddCommand(deleteOrganismCmd())
}

func printOrganisms(orgs ...*bioref.Organism) {
	table := newTable("ID", "Binary Name", "Short Name")
	for _, org := range orgs {
		table.Append([]string{org.ID, org.BinaryName, org.ShortName})
	}
	table.Render()
}

func createOrganismCmd() *cobra.Command {
	var binaryName string
	var shortName string

	var required = []string{"binary-name", "short-name"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create an organism",
		Example: `bioref organism create -b "Homo sapiens" -s human`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			org, err := client.Organisms.Create(ctx(), &bioref.CreateOrganismRequest{
				BinaryName: binaryName,
				ShortName:  shortName,
			})
			if err != nil {
				printError(err)
				return
			}

			printOrganisms(org)
		},
	}

	command.Flags().StringVarP(&binaryName, "binary-name", "b", "", "scientific name (required)")
	command.Flags().StringVarP(&shortName, "short-name", "s", "", "common name (required)")

	command.Flags().SortFlags = false

	return command
}

func getOrganismCmd() *cobra.Command {
	var id string
	var binaryName string

	command := &cobra.Command{
		Use:     "get",
		Short:   "get an organism by id or scientific name",
		Example: `bioref organism get -b "Homo sapiens"`,
		Run: func(cmd *cobra.Command, args []string) {
			if id == "" && binaryName == "" {
				color.Red("missing: --id or --binary-name")
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			var org *bioref.Organism
			var err error
			if id != "" {
				org, err = client.Organisms.Get(ctx(), id)
			} else {
				org, err = client.Organisms.GetByBinaryName(ctx(), binaryName)
			}
			if err != nil {
				printError(err)
				return
			}

			printOrganisms(org)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "organism id")
	command.Flags().StringVarP(&binaryName, "binary-name", "b", "", "scientific name")

	return command
}

func listOrganismCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list organisms",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			orgs, err := client.Organisms.List(ctx())
			if err != nil {
				printError(err)
				return
			}

			printOrganisms(orgs...)
		},
	}

	return command
}

func updateOrganismCmd() *cobra.Command {
	var id string
	var shortName string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update the short name of an organism",
		Example: "bioref organism update -i <organism-id> -s man",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			org, err := client.Organisms.Update(ctx(), &bioref.UpdateOrganismRequest{
				ID:        id,
				ShortName: optionalString(cmd, "short-name", shortName),
			})
			if err != nil {
				printError(err)
				return
			}

			printOrganisms(org)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "organism id (required)")
	command.Flags().StringVarP(&shortName, "short-name", "s", "", "new common name")

	return command
}

func deleteOrganismCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete an organism without genes or proteins",
		Example: "bioref organism delete -i <organism-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := client.Organisms.Delete(ctx(), id); err != nil {
				printError(err)
				return
			}

			color.Green("organism %s deleted", id)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "organism id (required)")

	return command
}
