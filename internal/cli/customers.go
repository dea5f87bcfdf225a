package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phenrril/lojamobile/internal/adapters/export/xlsx"
	"github.com/phenrril/lojamobile/internal/domain"
	"github.com/phenrril/lojamobile/internal/usecase"
)

func printCustomers(w io.Writer, list []domain.Customer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tCPF\tEMAIL\tPENDENTE")
	for _, c := range list {
		pending := ""
		if c.Pending {
			pending = "sim"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.CPF, c.Email, pending)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d cliente(s)\n", len(list))
}

// fail returns err with ExitFailure. In json format the error envelope is
// also written to stdout; text errors are printed by main.
func fail(f *OutputFormatter, msg string, err error) error {
	if f.Format == "json" {
		_ = f.Error(err)
	}
	return WrapExitError(ExitFailure, msg, err)
}

func newListCommand(opts *RootOptions, open Opener) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los clientes locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, open, func(uc *usecase.CustomerUC) error {
				list := uc.Search(query)
				return formatter(opts, cmd).Success(list, func(w io.Writer) { printCustomers(w, list) })
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filtra por nome o CPF")
	return cmd
}

func newLoadCommand(opts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Reemplaza los clientes locales con la fuente primaria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, open, func(uc *usecase.CustomerUC) error {
				f := formatter(opts, cmd)
				if err := uc.Load(cmd.Context()); err != nil {
					return fail(f, "load", err)
				}
				list := uc.Customers()
				return f.Success(list, func(w io.Writer) {
					fmt.Fprintf(w, "%d cliente(s) cargados\n", len(list))
				})
			})
		},
	}
}

func newSyncCommand(opts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sincroniza la fuente primaria con el backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, open, func(uc *usecase.CustomerUC) error {
				f := formatter(opts, cmd)
				report, err := uc.Sync(cmd.Context())
				if err != nil {
					return fail(f, "sync", err)
				}
				return f.Success(report, func(w io.Writer) {
					fmt.Fprintf(w, "Sincronizados: %d (creados %d, actualizados %d) en %s\n",
						report.Processed, report.Created, report.Updated, report.Duration.Round(time.Millisecond))
				})
			})
		},
	}
}

func newDiffCommand(opts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Compara los clientes locales con el backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, open, func(uc *usecase.CustomerUC) error {
				f := formatter(opts, cmd)
				d, err := uc.Differences(cmd.Context())
				if err != nil {
					return fail(f, "diff", err)
				}
				return f.Success(d, func(w io.Writer) {
					fmt.Fprintf(w, "Solo locales: %d\nSolo en backup: %d\nConflictos: %d\n", d.LocalOnly, d.BackupOnly, d.Conflicts)
				})
			})
		},
	}
}

func newRestoreCommand(opts *RootOptions, open Opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Sobrescribe los clientes locales con el backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewExitError(ExitCommandError, "restore reemplaza todos los clientes locales: confirmar con --yes")
			}
			return withEngine(cmd, open, func(uc *usecase.CustomerUC) error {
				f := formatter(opts, cmd)
				list, err := uc.Restore(cmd.Context())
				if err != nil {
					return fail(f, "restore", err)
				}
				return f.Success(list, func(w io.Writer) {
					fmt.Fprintf(w, "%d cliente(s) restaurados\n", len(list))
				})
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirma la restauración")
	return cmd
}

func newExportCommand(opts *RootOptions, open Opener) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta los clientes locales a XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, open, func(uc *usecase.CustomerUC) error {
				f := formatter(opts, cmd)
				list := uc.Customers()
				file, err := os.Create(output)
				if err != nil {
					return WrapExitError(ExitCommandError, "export", err)
				}
				if err := xlsx.WriteCustomers(file, list); err != nil {
					file.Close()
					return fail(f, "export", err)
				}
				if err := file.Close(); err != nil {
					return fail(f, "export", err)
				}
				summary := map[string]any{"file": output, "customers": len(list)}
				return f.Success(summary, func(w io.Writer) {
					fmt.Fprintf(w, "%d cliente(s) exportados a %s\n", len(list), output)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "clientes.xlsx", "archivo de salida")
	return cmd
}
