package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Render an employee's pass to a JPEG file",
		Long: `Renders the pass card of the employee with the given record id and writes
it as <employeeId>-pass.jpg into the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, slots, db, err := openOffline(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			list, err := service.LoadCollection(ctx, slots)
			if err != nil {
				return err
			}
			e, err := findEmployee(list, args[0])
			if err != nil {
				return err
			}

			renderer, err := service.NewPassRenderer(brandingFor(cfg))
			if err != nil {
				return fmt.Errorf("create pass renderer: %w", err)
			}
			data, err := renderer.Export(e)
			if err != nil {
				return fmt.Errorf("export pass: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			path := filepath.Join(outDir, diskFilename(e))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write pass: %w", err)
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the pass into")
	return cmd
}

func findEmployee(list []domain.Employee, id string) (domain.Employee, error) {
	for _, e := range list {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Employee{}, fmt.Errorf("employee %q: %w", id, domain.ErrNotFound)
}

// diskFilename is the pass filename reduced to a single path element, so an
// employee ID containing separators or dot segments stays inside the output
// directory.
func diskFilename(e domain.Employee) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, service.PassFilename(e))
	if !filepath.IsLocal(name) {
		return "pass.jpg"
	}
	return name
}
