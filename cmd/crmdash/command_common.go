package main

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"crmdash/internal/logging"
	"crmdash/internal/types"
)

const version = "dev"

func newVersionCmd(wiring commandWiring) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), wiring.version)
			return nil
		},
	}
}

func printNotifications(output io.Writer, items []types.NotificationItem) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTYPE\tCREATED\tMESSAGE")
	for _, item := range items {
		created := "-"
		if !item.CreatedAt.IsZero() {
			created = item.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", item.ID, item.Category, created, item.Message)
	}
	_ = writer.Flush()
}

// printRecords prints opaque records as a table. Identity comes first, the
// remaining columns are the union of keys in sorted order.
func printRecords(output io.Writer, records []map[string]any) {
	keys := map[string]struct{}{}
	for _, record := range records {
		for key := range record {
			if key != "_id" {
				keys[key] = struct{}{}
			}
		}
	}
	columns := make([]string, 0, len(keys))
	for key := range keys {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	header := append([]string{"ID"}, columns...)
	for i := range header {
		header[i] = strings.ToUpper(header[i])
	}
	fmt.Fprintln(writer, strings.Join(header, "\t"))
	for _, record := range records {
		row := []string{fmt.Sprint(valueOr(record["_id"], "-"))}
		for _, column := range columns {
			row = append(row, fmt.Sprint(valueOr(record[column], "")))
		}
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	_ = writer.Flush()
}

func valueOr(value any, fallback string) any {
	if value == nil {
		return fallback
	}
	return value
}

func newStderrLogger(stderr io.Writer, level string) logging.Logger {
	return logging.New(stderr, logging.ParseLevel(level))
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision, modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				return fmt.Sprintf("bin-%x", hasher.Sum(nil)[:6])
			}
		}
	}
	return version
}
