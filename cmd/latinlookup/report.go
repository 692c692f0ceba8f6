package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/latinlookup/internal/report"
)

func newReportCommand() *cobra.Command {
	var (
		outputName  string
		title       string
		generatePDF bool
		pdfOptions  report.PDFOptions
		pdfTheme    string
	)

	cmd := &cobra.Command{
		Use:   "report <words...>",
		Short: "Write a markdown vocabulary report for words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasSuffix(outputName, ".md") {
				return fmt.Errorf("--output must have .md extension: %s", outputName)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reader, cleanup, err := newReader(cfg)
			if err != nil {
				return fmt.Errorf("newReader() > %w", err)
			}
			defer cleanup()

			vocabulary, err := report.Build(cmd.Context(), reader, title, args)
			if err != nil {
				return fmt.Errorf("report.Build() > %w", err)
			}

			path, err := report.WriteFile(cfg.Outputs.ReportDirectory, outputName, cfg.Templates.ReportTemplate, vocabulary)
			if err != nil {
				return fmt.Errorf("report.WriteFile() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)

			if generatePDF {
				pdfOptions.Theme = report.PDFTheme(pdfTheme)
				pdfPath, err := report.WritePDF(path, pdfOptions)
				if err != nil {
					return fmt.Errorf("report.WritePDF() > %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", pdfPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputName, "output", "o", "vocabulary.md", "Report file name in outputs.report_directory")
	cmd.Flags().StringVar(&title, "title", "Vocabulary", "Report title")
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "Also export the report to PDF")
	cmd.Flags().StringVar(&pdfTheme, "pdf-theme", string(report.PDFThemeLight), "PDF color theme (light or dark)")
	cmd.Flags().BoolVar(&pdfOptions.Landscape, "pdf-landscape", false, "Use landscape pages for the PDF")
	return cmd
}
