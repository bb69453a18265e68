package cmd

import (
	"github.com/emrgen/bioref"
	"github.com/emrgen/bioref/internal/model"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "GO annotation commands",
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "interaction and homologue commands",
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	annotateCmd.AddCommand(annotationCmd("add", "place a term in a GO slot of a gene or protein", func(client *bioref.Client, entityID string, slot model.Slot, termID string) error {
		return client.Relations.Annotate(ctx(), entityID, slot, termID)
	}))
	annotateCmd.AddCommand(annotationCmd("remove", "remove a term from a GO slot", func(client *bioref.Client, entityID string, slot model.Slot, termID string) error {
		return client.Relations.Unannotate(ctx(), entityID, slot, termID)
	}))
	annotateCmd.AddCommand(listAnnotationsCmd())

	rootCmd.AddCommand(linkCmd)
	linkCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	linkCmd.AddCommand(relationCmd(model.RelationInteraction))
	linkCmd.AddCommand(relationCmd(model.RelationHomologue))
}

func annotationCmd(use, short string, run func(client *bioref.Client, entityID string, slot model.Slot, termID string) error) *cobra.Command {
	var entityID string
	var slot string
	var termID string

	var required = []string{"entity-id", "slot", "term-id"}

	command := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: "bioref annotate " + use + " -e <entity-id> -s cellular_component -t <term-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}
			s, err := model.ParseSlot(slot)
			if err != nil {
				color.Red("%v", err)
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := run(client, entityID, s, termID); err != nil {
				printError(err)
				return
			}

			color.Green("done")
		},
	}

	command.Flags().StringVarP(&entityID, "entity-id", "e", "", "gene or protein id (required)")
	command.Flags().StringVarP(&slot, "slot", "s", "", "cellular_component, biological_process or molecular_function (required)")
	command.Flags().StringVarP(&termID, "term-id", "t", "", "term id (required)")

	command.Flags().SortFlags = false

	return command
}

func listAnnotationsCmd() *cobra.Command {
	var entityID string
	var slot string

	var required = []string{"entity-id"}

	command := &cobra.Command{
		Use:     "list",
		Short:   "list the annotations of a gene or protein",
		Example: "bioref annotate list -e <entity-id> -s mf",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			slots := model.Slots()
			if slot != "" {
				s, err := model.ParseSlot(slot)
				if err != nil {
					color.Red("%v", err)
					return
				}
				slots = []model.Slot{s}
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			table := newTable("Slot", "GO ID", "Description", "Term ID")
			for _, s := range slots {
				terms, err := client.Relations.Annotations(ctx(), entityID, s)
				if err != nil {
					printError(err)
					return
				}
				for _, term := range terms {
					table.Append([]string{string(s), term.GoID, term.Description, term.ID})
				}
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&entityID, "entity-id", "e", "", "gene or protein id (required)")
	command.Flags().StringVarP(&slot, "slot", "s", "", "only this slot")

	return command
}

// relationCmd builds the add, remove and list commands of one symmetric relation.
func relationCmd(r model.Relation) *cobra.Command {
	command := &cobra.Command{
		Use:   string(r),
		Short: string(r) + " edges between two genes or two proteins",
	}
	command.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	link, unlink, list := relationFuncs(r)
	command.AddCommand(edgeCmd(r, "add", link))
	command.AddCommand(edgeCmd(r, "remove", unlink))
	command.AddCommand(listEdgesCmd(r, list))

	return command
}

type (
	edgeFunc  func(client *bioref.Client, a, b string) error
	edgesFunc func(client *bioref.Client, id string) ([]string, error)
)

func relationFuncs(r model.Relation) (edgeFunc, edgeFunc, edgesFunc) {
	if r == model.RelationHomologue {
		return func(client *bioref.Client, a, b string) error { return client.Relations.LinkHomologue(ctx(), a, b) },
			func(client *bioref.Client, a, b string) error { return client.Relations.UnlinkHomologue(ctx(), a, b) },
			func(client *bioref.Client, id string) ([]string, error) { return client.Relations.Homologues(ctx(), id) }
	}
	return func(client *bioref.Client, a, b string) error { return client.Relations.LinkInteraction(ctx(), a, b) },
		func(client *bioref.Client, a, b string) error { return client.Relations.UnlinkInteraction(ctx(), a, b) },
		func(client *bioref.Client, id string) ([]string, error) { return client.Relations.Interactions(ctx(), id) }
}

func edgeCmd(r model.Relation, use string, run edgeFunc) *cobra.Command {
	var a string
	var b string

	var required = []string{"entity-a", "entity-b"}

	command := &cobra.Command{
		Use:     use,
		Short:   use + " a " + string(r) + " edge",
		Example: "bioref link " + string(r) + " " + use + " -a <entity-id> -b <entity-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			if err := run(client, a, b); err != nil {
				printError(err)
				return
			}

			color.Green("done")
		},
	}

	command.Flags().StringVarP(&a, "entity-a", "a", "", "first gene or protein id (required)")
	command.Flags().StringVarP(&b, "entity-b", "b", "", "second entity id of the same kind (required)")

	return command
}

func listEdgesCmd(r model.Relation, list edgesFunc) *cobra.Command {
	var id string

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "list",
		Short:   "list the " + string(r) + " partners of a gene or protein",
		Example: "bioref link " + string(r) + " list -i <entity-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := openClient()
			if !ok {
				return
			}
			defer client.Close()

			ids, err := list(client, id)
			if err != nil {
				printError(err)
				return
			}

			table := newTable("Partner ID")
			for _, partner := range ids {
				table.Append([]string{partner})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&id, "id", "i", "", "gene or protein id (required)")

	return command
}
