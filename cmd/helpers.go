package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emrgen/bioref"
	"github.com/emrgen/bioref/internal/store"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// openClient connects to the configured database, reporting failures on the terminal.
func openClient() (*bioref.Client, bool) {
	cfg, err := bioref.LoadConfig()
	if err != nil {
		color.Red("config: %v", err)
		return nil, false
	}

	client, err := bioref.Open(cfg)
	if err != nil {
		logrus.Errorf("failed to open %s database: %v", cfg.DbDriver, err)
		return nil, false
	}

	return client, true
}

func printError(err error) {
	var se *store.Error
	if errors.As(err, &se) && se.Field != "" {
		color.Red("%s (field: %s)", err, se.Field)
	} else {
		color.Red("%s", err)
	}
	if bioref.IsRetryable(err) {
		color.Yellow("the store is unavailable, retry later")
	}
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flag(name).Changed {
		return nil
	}
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ctx() context.Context {
	return context.Background()
}

// checkMissingFlags checks if the required flags are set and returns ok if they are set
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")
		cmd.Usage()

		return true
	}

	return false
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
