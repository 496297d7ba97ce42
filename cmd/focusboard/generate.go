package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// runGenerate builds one snapshot. Without an output path the JSON goes to
// stdout; otherwise it is written to the file. Only the final write can fail.
func runGenerate(cmd *cobra.Command, a *app, output string) error {
	a.settings.LogMissing()
	doc := a.builder().Build(cmd.Context())

	if output == "" {
		data, err := doc.Encode()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := doc.Write(output); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	slog.Debug("snapshot written", "path", output, "blocks", len(doc.Blocks))
	return nil
}
