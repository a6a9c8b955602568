package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/moralreport/pkg/export"
	"github.com/benjaminschreck/moralreport/pkg/report"
)

// NewRenderCmd creates the render command
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a payload file to a .docx report",
		Long: `Render reads a JSON or YAML payload and writes the report.

The format follows the file extension unless --format is given. Use
"-" as input to read from stdin.

Examples:
  moralreport render --input result.json
  moralreport render --input result.yaml --dir reports/
  cat result.json | moralreport render --input - --output report.docx`,
		RunE: runRenderCmd,
	}

	cmd.Flags().StringP("input", "i", "", "Payload file (required)")
	cmd.Flags().StringP("output", "o", "", "Output file path (default <dir>/Hasil_Tes_<timestamp>.docx)")
	cmd.Flags().StringP("dir", "d", ".", "Output directory when --output is not given")
	cmd.Flags().StringP("format", "f", "", "Payload format: json or yaml")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	dir, _ := cmd.Flags().GetString("dir")
	format, _ := cmd.Flags().GetString("format")

	format, err = payloadFormat(input, format)
	if err != nil {
		return err
	}
	raw, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, log, nil)
	if err != nil {
		return err
	}

	var res *export.Result
	switch format {
	case "yaml":
		r, derr := report.DecodeYAML(raw)
		if derr != nil {
			return derr
		}
		res, err = svc.ExportReport(contextOf(cmd), r)
	default:
		res, err = svc.Export(contextOf(cmd), raw)
	}
	if err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(dir, res.Filename)
	}
	if err := os.WriteFile(output, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// payloadFormat resolves the payload format from the flag or the extension
func payloadFormat(input, flag string) (string, error) {
	if flag != "" {
		switch f := strings.ToLower(flag); f {
		case "json":
			return f, nil
		case "yaml", "yml":
			return "yaml", nil
		default:
			return "", fmt.Errorf("unknown format %q (want json or yaml)", flag)
		}
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "json", nil
	}
}

func readInput(stdin io.Reader, input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
