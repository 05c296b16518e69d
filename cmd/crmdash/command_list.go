package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"crmdash/internal/types"
)

func newListCmd(wiring commandWiring) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "List records of a CRM resource",
		Long:      fmt.Sprintf("List records of one of: %v.", types.Resources()),
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, ok := types.ParseResource(args[0])
			if !ok {
				return fmt.Errorf("unknown resource %q", args[0])
			}
			_, c, err := wiring.clientFromConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			records, err := c.Records(ctx, resource)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func resourceNames() []string {
	out := []string{}
	for _, resource := range types.Resources() {
		out = append(out, string(resource))
	}
	return out
}
