package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/relasi-app/relasi-core/pkg/adapters"
	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/relasi-app/relasi-core/pkg/services/pdf"

	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	inputPath  string
	outputPath string
	locale     string
	out        io.Writer
}

func NewGenerateCmd(out io.Writer) *cobra.Command {
	gc := &GenerateCmd{out: out}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a report payload file into a PDF",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.inputPath, "input", "", "Path to the report JSON payload")
	cmd.Flags().StringVar(&gc.outputPath, "out", "", "Output PDF path (defaults to the generated filename)")
	cmd.Flags().StringVar(&gc.locale, "locale", "id", "Locale for the generation date (id or en)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	res, err := buildFromFile(gc.inputPath, gc.locale)
	if err != nil {
		return err
	}

	outputPath := gc.outputPath
	if outputPath == "" {
		outputPath = res.Filename
	}

	if err := os.WriteFile(outputPath, res.PDF, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(gc.out, "wrote %s (%d pages)\n", outputPath, res.Pages)
	return nil
}

func buildFromFile(path, locale string) (*pdf.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var payload api.Report
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse report payload: %w", err)
	}

	doc, err := adapters.MapReportApiToDomain(&payload)
	if err != nil {
		return nil, err
	}

	gen := pdf.NewGenerator(domain.Locale(locale))
	return gen.Build(doc)
}
