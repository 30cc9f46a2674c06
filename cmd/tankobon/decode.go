package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/content"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Validate a content object and print it with defaults filled in",
		Long: `Decodes a single content JSON object, reporting the first missing
required field, and prints the normalized object with every field present.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			codec := content.NewCodec()
			r, err := codec.DecodeJSON(data)
			if err != nil {
				return err
			}
			if r.ID == "" && cfg.Import.DeriveIDs {
				r.ID = content.DeriveID(r.SourceID, r.ContentID)
			}

			out, err := codec.EncodeJSON(r)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				return fmt.Errorf("format output: %w", err)
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
