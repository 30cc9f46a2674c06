package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/backup"
	"github.com/tankobon/tankobon/internal/content"
)

type importSkipJSON struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type importResultJSON struct {
	Imported int              `json:"imported"`
	IDs      []string         `json:"ids"`
	Skipped  []importSkipJSON `json:"skipped"`
}

func newImportCmd(a *app) *cobra.Command {
	var (
		workers     int
		skipInvalid bool
		deriveIDs   bool
	)

	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Import a backup document into the library",
		Long: `Reads a backup document from a file or stdin and saves every valid
record. Entries missing required fields are skipped and reported unless
--skip-invalid=false, in which case nothing is saved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			opts := backup.Options{
				Workers:     cfg.Import.Workers,
				SkipInvalid: cfg.Import.SkipInvalid,
				DeriveIDs:   cfg.Import.DeriveIDs,
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("skip-invalid") {
				opts.SkipInvalid = skipInvalid
			}
			if cmd.Flags().Changed("derive-ids") {
				opts.DeriveIDs = deriveIDs
			}

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			doc, err := backup.Read(in)
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			imp := backup.NewImporter(content.NewCodec(), store, opts, a.logger)
			result, err := imp.Import(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), importResultToJSON(result))
			}
			printImportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent decoders (default from config)")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", true, "Skip entries that fail to decode")
	cmd.Flags().BoolVar(&deriveIDs, "derive-ids", true, "Fill absent ids from sourceId and contentId")
	return cmd
}

func importResultToJSON(r *backup.Result) importResultJSON {
	out := importResultJSON{
		Imported: len(r.Records),
		IDs:      make([]string, 0, len(r.Records)),
		Skipped:  make([]importSkipJSON, 0, len(r.Skipped)),
	}
	for _, rec := range r.Records {
		out.IDs = append(out.IDs, rec.ID)
	}
	for _, s := range r.Skipped {
		out.Skipped = append(out.Skipped, importSkipJSON{Index: s.Index, Error: s.Err.Error()})
	}
	return out
}

func printImportResult(w io.Writer, r *backup.Result) {
	fmt.Fprintf(w, "Imported %d records.\n", len(r.Records))
	if len(r.Skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped %d:\n", len(r.Skipped))
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "  #%d: %v\n", s.Index, s.Err)
	}
}
