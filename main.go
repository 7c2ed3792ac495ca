package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/campaign-report-converter/internal/aggregator"
	"github.com/insightdelivered/campaign-report-converter/internal/api"
	"github.com/insightdelivered/campaign-report-converter/internal/config"
	"github.com/insightdelivered/campaign-report-converter/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP server instead of converting files")
	outputFlag := flag.String("output", "", "Output file path (defaults to stdout)")
	formatFlag := flag.String("format", "csv", "Output format: csv or json")
	headerFlag := flag.Bool("header", true, "Include column header row in CSV output")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Campaign Report Converter
by Insight Delivered

Normalizes email campaign performance exports from MailChimp and MailerLite
into one canonical record schema, deduplicating campaigns that appear in
more than one file.

Usage:
  campaign-report-converter [flags] <report.csv> [report2.csv ...]
  campaign-report-converter -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a single report to canonical CSV on stdout
  campaign-report-converter report.csv

  # Merge several exports, later files winning on duplicate campaigns
  campaign-report-converter -format=json january.csv february.csv

  # Run the upload API and frontend
  campaign-report-converter -serve

Supported formats:
  MailChimp A/B test report, MailChimp campaign report,
  MailChimp aggregated export, MailerLite classic report.
  The format of each file is detected automatically.
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("campaign-report-converter v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		if err := serve(); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if err := convertFiles(flag.Args(), *outputFlag, *formatFlag, *headerFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:   "campaign-report-converter v" + version,
		BodyLimit: cfg.MaxFileSize * (cfg.MaxFiles + 1),
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	api.New(cfg).Register(app)

	log.Printf("listening on :%d", cfg.Port)
	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}

func convertFiles(paths []string, outputPath, format string, includeHeader bool) error {
	var inputs []aggregator.Input
	for i, path := range paths {
		if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" && ext != ".txt" {
			return fmt.Errorf("expected a .csv or .txt report, got %q", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, aggregator.Input{
			Name:  filepath.Base(path),
			Index: i,
			Text:  string(data),
		})
	}

	campaigns, failures := aggregator.ProcessBatch(inputs)

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "%s: %s\n", f.Filename, f.Error)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputPath, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(campaigns); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.Write(out, campaigns); err != nil {
			return fmt.Errorf("write CSV: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q (use csv or json)", format)
	}

	if len(campaigns) == 0 && len(failures) > 0 {
		return fmt.Errorf("no campaigns extracted from %d file(s)", len(paths))
	}
	return nil
}
