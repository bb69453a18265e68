package cmd

import (
	"os"
	"strconv"

	"github.com/emrgen/bioref"
	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/obo"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "gene ontology term commands",
}

func init() {
	rootCmd.AddCommand(termCmd)
	termCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	termCmd.AddCommand(createTermCmd())
	termCmd.AddCommand(getTermCmd())
	termCmd.AddCommand(listTermCmd())
	termCmd.AddCommand(updateTermCmd())
	termCmd.AddCommand(deleteTermCmd())
	termCmd.AddCommand(importTermCmd())
}

func parseCategoryFlag(value string) (*model.Category, bool) {
	if value == "" {
		return nil, true
	}
	c, err := model.ParseCategory(value)
	if err != nil {
		color.Red("%v", err)
		return nil, false
	}
	return &c, true
}

func printTerms(terms ...*bioref.OntologyTerm) {
	table := newTable("ID", "GO ID", "Category", "Description")
	for _, term := range terms {
		table.Append([]string{term.ID, term.GoID, term.CategoryName(), term.Description})
	}
	table.Render()
}

func createTermCmd() *cobra.Command {
	var goID string
	var description string
	var category string

	var required = []string{"go-id", "description"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create an ontology term",
		Example: `bioref term create -g GO:0005886 -d "plasma membrane" -c CellularComponent`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}
			c, ok := parseCategoryFlag(category)
			if !ok {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			term, err := client.Terms.Create(ctx(), &bioref.CreateOntologyTermRequest{
				GoID:        goID,
				Description: description,
				Category:    c,
			})
			if err != nil {
				printError(err)
				return
			}

			printTerms(term)
		},
	}

	command.Flags().StringVarP(&goID, "go-id", "g", "", "GO accession (required)")
	command.Flags().StringVarP(&description, "description", "d", "", "term description (required)")
	command.Flags().StringVarP(&category, "category", "c", "", "CellularComponent, BiologicalProcess or MolecularFunction")

	command.Flags().SortFlags = false

	return command
}

func getTermCmd() *cobra.Command {
	var id string
	var goID string

	command := &cobra.Command{
		Use:     "get",
		Short:   "get an ontology term by id or GO accession",
		Example: "bioref term get -g GO:0005886",
		Run: func(cmd *cobra.Command, args []string) {
			if id == "" && goID == "" {
				color.Red("missing: --id or --go-id")
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			var term *bioref.OntologyTerm
			var err error
			if id != "" {
				term, err = client.Terms.Get(ctx(), id)
			} else {
				term, err = client.Terms.GetByGoID(ctx(), goID)
			}
			if err != nil {
				printError(err)
				return
			}

			printTerms(term)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "term id")
	command.Flags().StringVarP(&goID, "go-id", "g", "", "GO accession")

	return command
}

func listTermCmd() *cobra.Command {
	var category string

	command := &cobra.Command{
		Use:     "list",
		Short:   "list ontology terms",
		Example: "bioref term list -c bp",
		Run: func(cmd *cobra.Command, args []string) {
			c, ok := parseCategoryFlag(category)
			if !ok {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			terms, err := client.Terms.List(ctx(), c)
			if err != nil {
				printError(err)
				return
			}

			printTerms(terms...)
		},
	}

	command.Flags().StringVarP(&category, "category", "c", "", "only terms of this category")

	return command
}

func updateTermCmd() *cobra.Command {
	var id string
	var description string
	var category string
	var clearCategory bool

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update an ontology term",
		Example: `bioref term update -i <term-id> -d "cell membrane"`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}
			c, ok := parseCategoryFlag(category)
			if !ok {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			term, err := client.Terms.Update(ctx(), &bioref.UpdateOntologyTermRequest{
				ID:            id,
				Description:   optionalString(cmd, "description", description),
				Category:      c,
				ClearCategory: clearCategory,
			})
			if err != nil {
				printError(err)
				return
			}

			printTerms(term)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "term id (required)")
	command.Flags().StringVarP(&description, "description", "d", "", "new description")
	command.Flags().StringVarP(&category, "category", "c", "", "new category")
	command.Flags().BoolVar(&clearCategory, "clear-category", false, "remove the category")

	command.Flags().SortFlags = false

	return command
}

func deleteTermCmd() *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete an ontology term that is not used by any annotation",
		Example: "bioref term delete -i <term-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := client.Terms.Delete(ctx(), id); err != nil {
				printError(err)
				return
			}

			color.Green("term %s deleted", id)
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "term id (required)")

	return command
}

func importTermCmd() *cobra.Command {
	var file string
	var withObsolete bool

	var required = []string{"file"}

	command := &cobra.Command{
		Use:     "import",
		Short:   "import terms from an OBO file",
		Long:    "import every term of an OBO file whose GO accession is not registered yet",
		Example: "bioref term import -f go-basic.obo",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			f, err := os.Open(file)
			if err != nil {
				logrus.Error(err)
				return
			}
			defer f.Close()

			ont, err := obo.Parse(f)
			if err != nil {
				logrus.Errorf("failed to parse %s: %v", file, err)
				return
			}

			requests := make([]*bioref.CreateOntologyTermRequest, 0, len(ont.Terms))
			obsolete := 0
			for _, term := range ont.Terms {
				if term.IsObsolete && !withObsolete {
					obsolete++
					continue
				}
				requests = append(requests, &bioref.CreateOntologyTermRequest{
					GoID:        term.ID,
					Description: term.Name,
					Category:    term.Category(),
				})
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			result, err := client.Terms.Import(ctx(), requests)
			if err != nil {
				printError(err)
			}

			printField("Ontology", ont.Ontology+" "+ont.DataVersion)
			printField("Created", strconv.Itoa(result.Created))
			printField("Skipped", strconv.Itoa(result.Skipped))
			printField("Obsolete", strconv.Itoa(obsolete))
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "OBO file (required)")
	command.Flags().BoolVar(&withObsolete, "with-obsolete", false, "import obsolete terms too")

	return command
}
