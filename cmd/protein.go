package cmd

import (
	"strconv"

	"github.com/emrgen/bioref"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var proteinCmd = &cobra.Command{
	Use:   "protein",
	Short: "protein commands",
}

func init() {
	rootCmd.AddCommand(proteinCmd)
	proteinCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	proteinCmd.AddCommand(createProteinCmd())
	proteinCmd.AddCommand(getProteinCmd())
	proteinCmd.AddCommand(listProteinCmd())
	proteinCmd.AddCommand(updateProteinCmd())
	proteinCmd.AddCommand(deleteProteinCmd())
	proteinCmd.AddCommand(proteinStructuresCmd())
}

func printProteins(proteins ...*bioref.Protein) {
	table := newTable("ID", "External ID", "Name", "Uniprot", "Gene", "Canonical")
	for _, p := range proteins {
		table.Append([]string{p.ID, p.ExternalID, p.Label(p.Organism), p.UniprotID, p.GeneID, strconv.FormatBool(p.IsCanonicalIsoform)})
	}
	table.Render()
}

func createProteinCmd() *cobra.Command {
	var request bioref.CreateProteinRequest
	var sequence string

	var required = []string{"organism-id", "external-id", "name", "gene-id", "uniprot-id"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a protein isoform of a gene",
		Example: "bioref protein create -o <organism-id> -g <gene-id> -e ENSP001 -n DMT1-1 -u Q9NP59 --canonical",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			request.Sequence = optionalString(cmd, "sequence", sequence)
			protein, err := client.Proteins.Create(ctx(), &request)
			if err != nil {
				printError(err)
				return
			}

			printProteins(protein)
		},
	}

	entityFlags(command, &request.EntityFields, &sequence)
	command.Flags().StringVarP(&request.GeneID, "gene-id", "g", "", "gene id (required)")
	command.Flags().StringVarP(&request.UniprotID, "uniprot-id", "u", "", "UniProt accession (required)")
	command.Flags().StringVar(&request.UniprotEntryName, "entry-name", "", "UniProt entry name")
	command.Flags().StringVar(&request.ProteinName, "protein-name", "", "protein name")
	command.Flags().BoolVar(&request.IsCanonicalIsoform, "canonical", false, "canonical isoform of the gene")
	command.Flags().SortFlags = false

	return command
}

func getProteinCmd() *cobra.Command {
	var id string
	var externalID string

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a protein by id or external id",
		Example: "bioref protein get -e ENSP001",
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

			var protein *bioref.Protein
			var err error
			if id != "" {
				protein, err = client.Proteins.Get(ctx(), id)
			} else {
				protein, err = client.Proteins.GetByExternalID(ctx(), externalID)
			}
			if err != nil {
				printError(err)
				return
			}

			printProteins(protein)
			printField("Protein", protein.ProteinName)
			printField("Entry", protein.UniprotEntryName)
			if protein.Sequence != nil {
				printField("Sequence", *protein.Sequence)
			}
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "protein id")
	command.Flags().StringVarP(&externalID, "external-id", "e", "", "external id")

	return command
}

func listProteinCmd() *cobra.Command {
	var filter bioref.ProteinFilter

	command := &cobra.Command{
		Use:     "list",
		Short:   "list proteins",
		Example: "bioref protein list -g <gene-id>",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			proteins, err := client.Proteins.List(ctx(), filter)
			if err != nil {
				printError(err)
				return
			}

			printProteins(proteins...)
		},
	}

	command.Flags().StringVarP(&filter.OrganismID, "organism-id", "o", "", "only proteins of this organism")
	command.Flags().StringVarP(&filter.GeneID, "gene-id", "g", "", "only isoforms of this gene")

	return command
}

func updateProteinCmd() *cobra.Command {
	var id, name, sequence, entryName, proteinName, geneID, uniprotID string
	var canonical bool

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update a protein",
		Example: "bioref protein update -i <protein-id> --canonical=false",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			request := &bioref.UpdateProteinRequest{
				ID:               id,
				DisplayName:      optionalString(cmd, "name", name),
				Sequence:         optionalString(cmd, "sequence", sequence),
				UniprotEntryName: optionalString(cmd, "entry-name", entryName),
				ProteinName:      optionalString(cmd, "protein-name", proteinName),
				GeneID:           optionalString(cmd, "gene-id", geneID),
				UniprotID:        optionalString(cmd, "uniprot-id", uniprotID),
			}
			if cmd.Flag("canonical").Changed {
				request.IsCanonicalIsoform = &canonical
			}

			protein, err := client.Proteins.Update(ctx(), request)
			if err != nil {
				printError(err)
				return
			}

			printProteins(protein)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "protein id (required)")
	command.Flags().StringVarP(&name, "name", "n", "", "new display name")
	command.Flags().StringVar(&sequence, "sequence", "", "new sequence, empty clears it")
	command.Flags().StringVar(&entryName, "entry-name", "", "new UniProt entry name")
	command.Flags().StringVar(&proteinName, "protein-name", "", "new protein name")
	command.Flags().StringVarP(&geneID, "gene-id", "g", "", "move to another gene")
	command.Flags().StringVarP(&uniprotID, "uniprot-id", "u", "", "new UniProt accession")
	command.Flags().BoolVar(&canonical, "canonical", false, "canonical isoform of the gene")
	command.Flags().SortFlags = false

	return command
}

func deleteProteinCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a protein with its annotations, edges and structure links",
		Example: "bioref protein delete -i <protein-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := client.Proteins.Delete(ctx(), id); err != nil {
				printError(err)
				return
			}

			color.Green("protein %s deleted", id)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "protein id (required)")

	return command
}

func proteinStructuresCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "structures",
		Short:   "list the structures of a protein",
		Example: "bioref protein structures -i <protein-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			structures, err := client.Proteins.Structures(ctx(), id)
			if err != nil {
				printError(err)
				return
			}

			printStructures(structures...)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "protein id (required)")

	return command
}
