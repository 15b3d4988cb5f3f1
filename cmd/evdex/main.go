package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/markokajkut/evdex/internal/evd"
	"github.com/markokajkut/evdex/internal/export"
	"github.com/markokajkut/evdex/internal/reader"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "evdex",
		Short: "POSITIONSDATEN extractor for e-VD/v-e-VD declaration documents",
		Long: `evdex pulls the repeating POSITIONSDATEN blocks out of table-extracted
e-VD/v-e-VD excise declaration documents and rebuilds them as structured
records.

It reads the flat text produced by upstream table extraction, reconciles
scattered field labels with their values, and produces:
  - One record per declared position, in document order
  - A flat table across all positions (CSV, JSON or aligned text)
  - Diagnostics for values that could not be attributed to a field`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(segmentsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract position data from a declaration document",
		Long: `Extract POSITIONSDATEN records from a declaration document and write
them as CSV, JSON or an aligned text table.

Supported formats: TXT, CSV, PDF, DOCX, HTML, MD

Example:
  evdex extract --source declaration.pdf
  evdex extract --source declaration.csv --output positions.csv --format csv
  evdex extract --source declaration.txt --format json --unmapped`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			comma, _ := cmd.Flags().GetString("comma")
			unmapped, _ := cmd.Flags().GetBool("unmapped")
			showStats, _ := cmd.Flags().GetBool("stats")
			pdfFallback, _ := cmd.Flags().GetBool("pdf-fallback")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}

			start := time.Now()
			text, err := readSource(source, pdfFallback)
			if err != nil {
				return err
			}

			records, err := evd.Parse(text)
			if err != nil {
				return fmt.Errorf("parse %s: %w", source, err)
			}
			table := evd.Flatten(records)

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "csv":
				if err := export.WriteCSV(out, table, firstRune(comma)); err != nil {
					return fmt.Errorf("write csv: %w", err)
				}
			case "json":
				b, err := export.RecordsJSON(records, unmapped)
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				out.Write(b)
				fmt.Fprintln(out)
			case "table":
				if err := export.WriteText(out, table); err != nil {
					return fmt.Errorf("write table: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want csv, json or table)", format)
			}

			if showStats {
				unmappedTotal := 0
				for _, rec := range records {
					unmappedTotal += len(rec.Unmapped)
				}
				fmt.Fprintf(os.Stderr, "%d position(s), %d column(s), %d unmapped value(s), %s\n",
					len(records), len(table.Columns), unmappedTotal, time.Since(start).Round(time.Millisecond))
			}
			if output != "" {
				fmt.Printf("Wrote %s (%d rows, %d columns)\n", output, len(table.Rows), len(table.Columns))
			}
			return nil
		},
	}

	cmd.Flags().StringP("source", "s", "", "declaration document to extract from (required)")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	cmd.Flags().StringP("format", "f", "table", "output format: csv, json or table")
	cmd.Flags().String("comma", ",", "CSV field delimiter")
	cmd.Flags().Bool("unmapped", false, "include unattributed values in JSON output")
	cmd.Flags().Bool("stats", false, "print extraction statistics to stderr")
	cmd.Flags().Bool("pdf-fallback", true, "fall back to pdftotext when PDF text extraction is empty")

	return cmd
}

func segmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Inspect the POSITIONSDATEN segments of a document",
		Long: `List the POSITIONSDATEN segments found in a declaration document with
per-segment line and field counts. Useful for checking what the parser
sees before extracting.

Example:
  evdex segments --source declaration.csv
  evdex segments --source declaration.pdf --preview 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			preview, _ := cmd.Flags().GetInt("preview")
			pdfFallback, _ := cmd.Flags().GetBool("pdf-fallback")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}

			text, err := readSource(source, pdfFallback)
			if err != nil {
				return err
			}

			segments := evd.Segments(text)
			if len(segments) == 0 {
				return fmt.Errorf("inspect %s: %w", source, evd.ErrNoStructure)
			}

			fmt.Printf("%d POSITIONSDATEN segment(s) in %s\n", len(segments), source)
			for i, seg := range segments {
				rec := evd.ParseSegment(seg)
				fmt.Printf("\nsegment %d: %d line(s), %d field(s)", i+1, countLines(seg), rec.Fields.Len())
				if rec.Packages != nil {
					fmt.Printf(", %d package field(s)", rec.Packages.Len())
				}
				if len(rec.Unmapped) > 0 {
					fmt.Printf(", %d unmapped value(s)", len(rec.Unmapped))
				}
				fmt.Println()

				if preview > 0 {
					shown := 0
					for _, line := range strings.Split(seg, "\n") {
						line = strings.TrimSpace(line)
						if line == "" {
							continue
						}
						fmt.Printf("  | %s\n", line)
						shown++
						if shown >= preview {
							break
						}
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("source", "s", "", "declaration document to inspect (required)")
	cmd.Flags().IntP("preview", "n", 0, "print the first N lines of each segment")
	cmd.Flags().Bool("pdf-fallback", true, "fall back to pdftotext when PDF text extraction is empty")

	return cmd
}

// readSource turns a source file into the preprocessed line stream the
// parser consumes.
func readSource(source string, pdfFallback bool) (string, error) {
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return "", fmt.Errorf("source file not found: %s", source)
	}

	rd, err := reader.ForFile(source)
	if err != nil {
		return "", err
	}
	if pdfRd, ok := rd.(*reader.PDFReader); ok {
		pdfRd.FallbackPdftotext = pdfFallback
	}

	f, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	text, err := rd.Read(f, source)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return evd.PrefixBareLabels(text), nil
}

func countLines(segment string) int {
	n := 0
	for _, line := range strings.Split(segment, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
