package cmd

import (
	"strconv"

	"github.com/emrgen/bioref"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var geneCmd = &cobra.Command{
	Use:   "gene",
	Short: "gene commands",
}

func init() {
	rootCmd.AddCommand(geneCmd)
	geneCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	geneCmd.AddCommand(createGeneCmd())
	geneCmd.AddCommand(getGeneCmd())
	geneCmd.AddCommand(listGeneCmd())
	geneCmd.AddCommand(updateGeneCmd())
	geneCmd.AddCommand(deleteGeneCmd())
	geneCmd.AddCommand(isoformsCmd())
}

func printGenes(genes ...*bioref.Gene) {
	table := newTable("ID", "External ID", "Name", "Sequence")
	for _, gene := range genes {
		table.Append([]string{gene.ID, gene.ExternalID, gene.Label(gene.Organism), strconv.Itoa(len(deref(gene.Sequence)))})
	}
	table.Render()
}

// entityFlags binds the flags shared by gene and protein create.
func entityFlags(command *cobra.Command, fields *bioref.EntityFields, sequence *string) {
	command.Flags().StringVarP(&fields.OrganismID, "organism-id", "o", "", "organism id (required)")
	command.Flags().StringVarP(&fields.ExternalID, "external-id", "e", "", "external id (required)")
	command.Flags().StringVarP(&fields.DisplayName, "name", "n", "", "display name (required)")
	command.Flags().StringVar(sequence, "sequence", "", "residue sequence")
}

func createGeneCmd() *cobra.Command {
	var fields bioref.EntityFields
	var sequence string

	var required = []string{"organism-id", "external-id", "name"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a gene",
		Example: "bioref gene create -o <organism-id> -e ENSG001 -n DMT1",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			fields.Sequence = optionalString(cmd, "sequence", sequence)
			gene, err := client.Genes.Create(ctx(), &bioref.CreateGeneRequest{EntityFields: fields})
			if err != nil {
				printError(err)
				return
			}

			printGenes(gene)
		},
	}

	entityFlags(command, &fields, &sequence)
	command.Flags().SortFlags = false

	return command
}

func getGeneCmd() *cobra.Command {
	var id string
	var externalID string

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a gene by id or external id",
		Example: "bioref gene get -e ENSG001",
		Run: func(cmd *cobra.Command, args []string) {
			if id == "" && externalID == "" {
				color.Red("missing: --id or --external-id")
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			var gene *bioref.Gene
			var err error
			if id != "" {
				gene, err = client.Genes.Get(ctx(), id)
			} else {
				gene, err = client.Genes.GetByExternalID(ctx(), externalID)
			}
			if err != nil {
				printError(err)
				return
			}

			printGenes(gene)
			if gene.Sequence != nil {
				printField("Sequence", *gene.Sequence)
			}
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "gene id")
	command.Flags().StringVarP(&externalID, "external-id", "e", "", "external id")

	return command
}

func listGeneCmd() *cobra.Command {
	var organismID string

	command := &cobra.Command{
		Use:     "list",
		Short:   "list genes",
		Example: "bioref gene list -o <organism-id>",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			genes, err := client.Genes.List(ctx(), organismID)
			if err != nil {
				printError(err)
				return
			}

			printGenes(genes...)
		},
	}

	command.Flags().StringVarP(&organismID, "organism-id", "o", "", "only genes of this organism")

	return command
}

func updateGeneCmd() *cobra.Command {
	var id string
	var name string
	var sequence string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update a gene",
		Example: "bioref gene update -i <gene-id> -n SLC11A2",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			gene, err := client.Genes.Update(ctx(), &bioref.UpdateGeneRequest{
				ID:          id,
				DisplayName: optionalString(cmd, "name", name),
				Sequence:    optionalString(cmd, "sequence", sequence),
			})
			if err != nil {
				printError(err)
				return
			}

			printGenes(gene)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "gene id (required)")
	command.Flags().StringVarP(&name, "name", "n", "", "new display name")
	command.Flags().StringVar(&sequence, "sequence", "", "new sequence, empty clears it")

	return command
}

func deleteGeneCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a gene without proteins",
		Example: "bioref gene delete -i <gene-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := client.Genes.Delete(ctx(), id); err != nil {
				printError(err)
				return
			}

			color.Green("gene %s deleted", id)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "gene id (required)")

	return command
}

func isoformsCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "isoforms",
		Short:   "list the proteins of a gene",
		Example: "bioref gene isoforms -i <gene-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			proteins, err := client.Genes.Isoforms(ctx(), id)
			if err != nil {
				printError(err)
				return
			}

			printProteins(proteins...)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "gene id (required)")

	return command
}
