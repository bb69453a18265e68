package cmd

import (
	"github.com/emrgen/bioref"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "protein data bank structure commands",
}

func init() {
	rootCmd.AddCommand(structureCmd)
	structureCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	structureCmd.AddCommand(createStructureCmd())
	structureCmd.AddCommand(listStructureCmd())
	structureCmd.AddCommand(attachStructureCmd())
	structureCmd.AddCommand(detachStructureCmd())
	structureCmd.AddCommand(listStructureProteinsCmd())
	structureCmd.AddCommand(deleteStructureCmd())
}

func printStructures(structures ...*bioref.Structure) {
	table := newTable("ID", "Structure ID")
	for _, s := range structures {
		table.Append([]string{s.ID, s.StructureID})
	}
	table.Render()
}

func createStructureCmd() *cobra.Command {
	var structureID string

	var required = []string{"structure-id"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "register a structure accession",
		Example: "bioref structure create -s 1ABC",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			structure, err := client.Structures.Create(ctx(), structureID)
			if err != nil {
				printError(err)
				return
			}

			printStructures(structure)
		},
	}

	command.Flags().StringVarP(&structureID, "structure-id", "s", "", "PDB accession (required)")

	return command
}

func listStructureCmd() *cobra.Command {
	var structureID string

	command := &cobra.Command{
		Use:     "list",
		Short:   "list structures",
		Example: "bioref structure list -s 1ABC",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			structures, err := client.Structures.List(ctx(), structureID)
			if err != nil {
				printError(err)
				return
			}

			printStructures(structures...)
		},
	}

	command.Flags().StringVarP(&structureID, "structure-id", "s", "", "only this PDB accession")

	return command
}

func structureLinkCmd(use, short string, run func(client *bioref.Client, proteinID, structureID string) error) *cobra.Command {
	var proteinID string
	var structureID string

	var required = []string{"protein-id", "id"}

	command := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: "bioref structure " + use + " -p <protein-id> -i <structure-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := run(client, proteinID, structureID); err != nil {
				printError(err)
				return
			}

			color.Green("done")
		},
	}

	command.Flags().StringVarP(&proteinID, "protein-id", "p", "", "protein id (required)")
	command.Flags().StringVarP(&structureID, "id", "i", "", "structure id (required)")

	return command
}

func attachStructureCmd() *cobra.Command {
	return structureLinkCmd("attach", "link a protein to a structure", func(client *bioref.Client, proteinID, structureID string) error {
		return client.Structures.Attach(ctx(), proteinID, structureID)
	})
}

func detachStructureCmd() *cobra.Command {
	return structureLinkCmd("detach", "unlink a protein from a structure", func(client *bioref.Client, proteinID, structureID string) error {
		return client.Structures.Detach(ctx(), proteinID, structureID)
	})
}

func listStructureProteinsCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "proteins",
		Short:   "list the proteins covered by a structure",
		Example: "bioref structure proteins -i <structure-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			proteins, err := client.Structures.ListProteins(ctx(), id)
			if err != nil {
				printError(err)
				return
			}

			printProteins(proteins...)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "structure id (required)")

	return command
}

func deleteStructureCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a structure that is not attached to any protein",
		Example: "bioref structure delete -i <structure-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := client.Structures.Delete(ctx(), id); err != nil {
				printError(err)
				return
			}

			color.Green("structure %s deleted", id)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "structure id (required)")

	return command
}
