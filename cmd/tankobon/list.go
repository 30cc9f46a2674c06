package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/content"
	"github.com/tankobon/tankobon/internal/library"
)

type listResultJSON struct {
	Total int              `json:"total"`
	Items []map[string]any `json:"items"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		source, typeFilter, statusFilter string
		limit, offset                    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := library.ContentFilter{Limit: limit, Offset: offset}
			if source != "" {
				filter.SourceID = &source
			}
			if typeFilter != "" {
				t, ok := content.LookupType(typeFilter)
				if !ok {
					return fmt.Errorf("unknown type %q", typeFilter)
				}
				filter.ContentType = &t
			}
			if statusFilter != "" {
				s, ok := content.LookupStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filter.Status = &s
			}

			store, closeStore, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			records, total, err := store.ListContent(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				codec := content.NewCodec()
				res := listResultJSON{Total: total, Items: make([]map[string]any, 0, len(records))}
				for _, r := range records {
					res.Items = append(res.Items, codec.Encode(r))
				}
				return printJSON(out, res)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No content in library.")
				return nil
			}
			printList(out, records, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Filter by source id")
	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Filter by type (novel, manga, comic, unknown)")
	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "Filter by status (ongoing, completed, cancelled, hiatus, unknown)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum number of items to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of items to skip")
	return cmd
}

func printList(w io.Writer, records []*content.Record, total int) {
	fmt.Fprintf(w, "Library (%d items):\n\n", total)
	fmt.Fprintf(w, "  %-30s %-8s %-40s %-10s %s\n", "ID", "TYPE", "TITLE", "STATUS", "SOURCE")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))

	for _, r := range records {
		fmt.Fprintf(w, "  %-30s %-8s %-40s %-10s %s\n",
			truncate(r.ID, 30),
			r.ContentType,
			truncate(r.Title, 40),
			r.Status,
			r.SourceID)
	}

	if total > len(records) {
		fmt.Fprintf(w, "\n  Showing %d of %d items. Use --limit and --offset to see more.\n", len(records), total)
	}
}
