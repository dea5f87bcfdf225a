package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/phenrril/lojamobile/internal/usecase"
)

// RootOptions holds the global flags.
type RootOptions struct {
	Format string // "text" | "json"
}

var ValidFormats = []string{"text", "json"}

// Opener builds the customer engine with its persisted state loaded.
type Opener func(ctx context.Context) (*usecase.CustomerUC, error)

// NewRootCommand creates the clientesctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "clientesctl",
		Short: "Operaciones sobre los clientes locales y el backup",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("formato %q inválido: debe ser uno de %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (json|text)")

	cmd.AddCommand(newListCommand(opts, open))
	cmd.AddCommand(newLoadCommand(opts, open))
	cmd.AddCommand(newSyncCommand(opts, open))
	cmd.AddCommand(newDiffCommand(opts, open))
	cmd.AddCommand(newRestoreCommand(opts, open))
	cmd.AddCommand(newExportCommand(opts, open))
	return cmd
}

func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

// withEngine opens the engine, runs fn and waits for background writes.
func withEngine(cmd *cobra.Command, open Opener, fn func(*usecase.CustomerUC) error) error {
	uc, err := open(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "no se pudo abrir el store", err)
	}
	defer uc.Wait()
	return fn(uc)
}
