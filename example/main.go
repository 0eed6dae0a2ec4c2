package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/ocrtable"
	"github.com/ivanvanderbyl/ocrtable/tesseract"
)

func main() {
	cmd := &cli.Command{
		Name:  "ocrtable",
		Usage: "Rebuild a table from OCR detections using known header labels",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input file: detection JSON, PDF or image",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Input format: json, pdf or image (default: from file extension)",
			},
			&cli.StringSliceFlag{
				Name:     "header",
				Aliases:  []string{"H"},
				Usage:    "Header label, repeat in left-to-right order",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Output mode: table (JSON) or document (markdown)",
				Value:   "table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "sort-headers",
				Usage: "Order columns by header position instead of flag order",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "PDF page number (0-indexed, -1 for all pages)",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Tesseract language(s), '+' separated",
				Value: "chi_sim+eng",
			},
			&cli.StringFlag{
				Name:  "level",
				Usage: "Tesseract detection level: word or line",
				Value: "word",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log processing metrics",
			},
		},
		Action: extractTable,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractTable(ctx context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	headers := cmd.StringSlice("header")
	mode := cmd.String("mode")

	if mode != "table" && mode != "document" {
		return fmt.Errorf("unknown mode %q", mode)
	}

	format := cmd.String("format")
	if format == "" {
		format = formatFromExtension(inputPath)
	}

	pages, err := loadPages(cmd, format, inputPath)
	if err != nil {
		return err
	}

	config := ocrtable.DefaultConfig()
	config.SortHeadersByPosition = cmd.Bool("sort-headers")
	config.EnableMetricsLogging = cmd.Bool("metrics")
	extractor := ocrtable.NewExtractor(config)

	fmt.Fprintf(os.Stderr, "Extracting table from %d page(s)...\n", len(pages))
	docs, err := extractor.ExtractPages(ctx, pages, headers)
	if err != nil {
		return fmt.Errorf("failed to extract table: %w", err)
	}

	var out io.Writer = os.Stdout
	if outputPath := cmd.String("output"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
		defer fmt.Fprintf(os.Stderr, "Output written to %s\n", outputPath)
	}

	if mode == "document" {
		for i, doc := range docs {
			if i > 0 {
				fmt.Fprintln(out, "\n---")
			}
			fmt.Fprintln(out, doc.ToMarkdown())
		}
		return nil
	}

	var table []ocrtable.TableRow
	for _, doc := range docs {
		table = append(table, doc.Table...)
	}
	if table == nil {
		table = []ocrtable.TableRow{}
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(table)
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".pdf":
		return "pdf"
	default:
		return "image"
	}
}

func loadPages(cmd *cli.Command, format, inputPath string) ([][]ocrtable.Detection, error) {
	switch format {
	case "json":
		file, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()

		result, err := ocrtable.LoadResultJSON(file)
		if err != nil {
			return nil, err
		}
		if result.IsEmpty() {
			return nil, ocrtable.ErrContentEmpty
		}
		return [][]ocrtable.Detection{result.Detections()}, nil

	case "pdf":
		// Initialise pdfium
		pool, err := webassembly.Init(webassembly.Config{
			MinIdle:  1,
			MaxIdle:  1,
			MaxTotal: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialise pdfium: %w", err)
		}
		defer pool.Close()

		instance, err := pool.GetInstance(time.Second * 30)
		if err != nil {
			return nil, fmt.Errorf("failed to get pdfium instance: %w", err)
		}

		if page := cmd.Int("page"); page >= 0 {
			detections, err := ocrtable.LoadPDFDetections(instance, inputPath, page)
			if err != nil {
				return nil, err
			}
			return [][]ocrtable.Detection{detections}, nil
		}
		return ocrtable.LoadPDFPages(instance, inputPath)

	case "image":
		level, err := tesseract.ParseLevel(cmd.String("level"))
		if err != nil {
			return nil, err
		}
		source := tesseract.New(level)
		defer source.Close()

		if err := source.SetLanguage(strings.Split(cmd.String("lang"), "+")...); err != nil {
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
		result, err := source.RecognizeFile(inputPath)
		if err != nil {
			return nil, err
		}
		if result.IsEmpty() || result.Len() == 0 {
			return nil, ocrtable.ErrContentEmpty
		}
		return [][]ocrtable.Detection{result.Detections()}, nil
	}

	return nil, fmt.Errorf("unknown format %q", format)
}
