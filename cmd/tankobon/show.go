package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/content"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			r, err := store.GetContent(args[0])
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), content.NewCodec().Encode(r))
			}
			printRecord(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func printRecord(w io.Writer, r *content.Record) {
	fmt.Fprintf(w, "%s\n\n", r.Title)
	fmt.Fprintf(w, "  ID:           %s\n", r.ID)
	fmt.Fprintf(w, "  Source:       %s (%s)\n", r.SourceID, r.ContentID)
	fmt.Fprintf(w, "  Type:         %s\n", r.ContentType)
	fmt.Fprintf(w, "  Status:       %s\n", r.Status)
	fmt.Fprintf(w, "  Reading mode: %s\n", r.RecommendedReadingMode)
	if r.AdultContent {
		fmt.Fprintln(w, "  Adult:        yes")
	}
	if len(r.AdditionalTitles) > 0 {
		fmt.Fprintf(w, "  Also known:   %s\n", strings.Join(r.AdditionalTitles, "; "))
	}
	if len(r.Creators) > 0 {
		fmt.Fprintf(w, "  Creators:     %s\n", strings.Join(r.Creators, ", "))
	}
	if r.WebURL != nil {
		fmt.Fprintf(w, "  Web:          %s\n", *r.WebURL)
	}
	if r.AcquisitionLink != nil {
		fmt.Fprintf(w, "  Acquire:      %s\n", *r.AcquisitionLink)
	}

	for _, p := range r.Properties {
		labels := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			labels = append(labels, t.Label)
		}
		fmt.Fprintf(w, "  %-13s %s\n", p.Label+":", strings.Join(labels, ", "))
	}

	if len(r.TrackerInfo) > 0 {
		fmt.Fprintln(w, "  Trackers:")
		for _, k := range slices.Sorted(maps.Keys(r.TrackerInfo)) {
			fmt.Fprintf(w, "    %s: %s\n", k, r.TrackerInfo[k])
		}
	}

	if r.Summary != nil && *r.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", *r.Summary)
	}
}
