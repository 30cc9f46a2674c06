package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/library"
	"github.com/tankobon/tankobon/internal/match"
)

type linkJSON struct {
	ID           string  `json:"id"`
	SourceID     string  `json:"sourceId"`
	Title        string  `json:"title"`
	MatchedTitle string  `json:"matchedTitle"`
	Score        float64 `json:"score"`
	Confidence   string  `json:"confidence"`
}

func newLinksCmd(a *app) *cobra.Command {
	var minConfidence string

	cmd := &cobra.Command{
		Use:   "links <id>",
		Short: "Find the same series from other sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			threshold := cfg.Linking.Confidence()
			if minConfidence != "" {
				if threshold, err = match.ParseConfidence(minConfidence); err != nil {
					return err
				}
			}

			store, closeStore, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			links, err := store.FindLinked(args[0], threshold)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				out := make([]linkJSON, 0, len(links))
				for _, l := range links {
					out = append(out, linkJSON{
						ID:           l.Record.ID,
						SourceID:     l.Record.SourceID,
						Title:        l.Record.Title,
						MatchedTitle: l.Match.Title,
						Score:        l.Match.Score,
						Confidence:   l.Match.Confidence.String(),
					})
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			printLinks(cmd.OutOrStdout(), links)
			return nil
		},
	}

	cmd.Flags().StringVar(&minConfidence, "min-confidence", "", "Minimum match confidence: low, medium, high (default from config)")
	return cmd
}

func printLinks(w io.Writer, links []library.Link) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No linked sources found.")
		return
	}
	fmt.Fprintf(w, "  %-8s %-6s %-30s %s\n", "MATCH", "SCORE", "ID", "TITLE")
	for _, l := range links {
		fmt.Fprintf(w, "  %-8s %-6.2f %-30s %s\n",
			l.Match.Confidence,
			l.Match.Score,
			truncate(l.Record.ID, 30),
			l.Record.Title)
	}
}
