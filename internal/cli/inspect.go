package cli

import (
	"context"

	"github.com/spf13/cobra"

	"mist/internal/app"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <plan>",
		Short: "Summarize a written install plan (file or output directory)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0])
		},
	}
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	result, err := newAppService().Inspect(ctx, app.InspectRequest{Path: expanded})
	if err != nil {
		return err
	}
	printInspect(cmd.OutOrStdout(), result)
	return nil
}
