// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/engine"
	"folio/internal/store"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in templates and their database overrides",
	RunE: withDB(func(cmd *cobra.Command, _ *config.Config, db *sqlx.DB) error {
		ts := store.NewTemplateStore(db)
		overrides, err := ts.List(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSOURCE\tVERSION\tACTIVE\tUPDATED")
		for _, name := range engine.New(ts).Names() {
			fmt.Fprintf(tw, "%s\tbuilt-in\t-\t-\t-\n", name)
		}
		for _, t := range overrides {
			fmt.Fprintf(tw, "%s\tdatabase\t%d\t%t\t%s\n", t.Name, t.Version, t.IsActive, t.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	}),
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check template files for syntax errors before storing them as overrides",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTemplatesValidate,
}

func init() {
	templatesCmd.AddCommand(templatesValidateCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesValidate(cmd *cobra.Command, args []string) error {
	eng := engine.New(nil)
	var failed int
	for _, name := range args {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		if err := eng.ValidateTemplate(string(content)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates are invalid", failed, len(args))
	}
	return nil
}
