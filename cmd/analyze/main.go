package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"company-analyzer/internal/analysis"
	"company-analyzer/internal/analysis/analysisobs"
	"company-analyzer/internal/dataset"
	"company-analyzer/internal/logger"
	"company-analyzer/internal/report"
	"company-analyzer/internal/store"
	"company-analyzer/internal/types"
)

// Exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitWeakGrade = 2
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute runs one analysis and returns the process exit code. Logs and
// spans are flushed before it returns.
func execute(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "config.yaml", "path to config file")
	company := fs.String("company", "", "company name to analyze (required)")
	format := fs.String("format", "", "output format: text, json, or csv (default from config)")
	outputFile := fs.String("output", "", "save report to file (optional)")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if strings.TrimSpace(*company) == "" {
		fmt.Fprintln(out, "Error: -company is required")
		fs.Usage()
		return exitError
	}

	_ = godotenv.Load()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(out, "Error loading config: %v\n", err)
		return exitError
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(out, "Error initializing logger: %v\n", err)
		return exitError
	}
	defer flushTelemetry()

	return analyze(cfg, *company, *format, *outputFile, out)
}

func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(ctx)
}

func analyze(cfg *store.Config, company, format, outputFile string, out io.Writer) int {
	if format == "" {
		format = cfg.Report.Format
	}
	reportFormat, err := report.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(out, "%v. Using text format.\n", err)
		reportFormat = report.FormatText
	}

	source, err := dataset.NewSource(cfg)
	if err != nil {
		fmt.Fprintf(out, "Error creating database source: %v\n", err)
		return exitError
	}
	st := dataset.NewStore(source, cfg.Dataset.CacheTTL)
	analyzer := analysisobs.Wrap(analysis.NewService(st, cfg.Search.FuzzyLimit))

	fmt.Fprintf(out, "🔍 Starting Financial Analysis for %s\n", company)
	fmt.Fprintln(out, strings.Repeat("─", 77))

	result, err := analyzer.AnalyzeCompany(context.Background(), strings.TrimSpace(company))
	if err != nil {
		var notFound *analysis.NotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(out, "No company matches %q.\n", company)
			if len(notFound.Suggestions) > 0 {
				fmt.Fprintf(out, "Did you mean: %s\n", strings.Join(notFound.Suggestions, ", "))
			}
			return exitError
		}
		fmt.Fprintf(out, "Error running analysis: %v\n", err)
		return exitError
	}
	if !result.UsedExactMatch {
		fmt.Fprintf(out, "No exact match; using closest company %q\n\n", result.MatchedName)
	}

	reporter := report.NewReporter(cfg.Report.OutputDir)
	reportContent, err := reporter.GenerateReport(result.Result, reportFormat)
	if err != nil {
		fmt.Fprintf(out, "Error generating report: %v\n", err)
		return exitError
	}

	fmt.Fprintln(out, reportContent)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(reportContent), 0644); err != nil {
			fmt.Fprintf(out, "Error saving report to file: %v\n", err)
			return exitError
		}
		fmt.Fprintf(out, "\n✅ Report saved to: %s\n", outputFile)
	} else {
		savedPath, err := reporter.SaveReport(result.Result, reportFormat)
		if err != nil {
			fmt.Fprintf(out, "Warning: Could not auto-save report: %v\n", err)
		} else {
			fmt.Fprintf(out, "\n✅ Report auto-saved to: %s\n", savedPath)
		}
	}

	eval := result.Result.Evaluation
	fmt.Fprintln(out, "\n"+strings.Repeat("─", 77))
	fmt.Fprintf(out, "Analysis complete for %s\n", result.MatchedName)
	fmt.Fprintf(out, "Total Score: %d/100\n", eval.TotalScore)
	fmt.Fprintf(out, "Grade: %s %s (%s)\n", eval.Grade, eval.Emoji, eval.Status)

	if eval.Grade == types.GradeD {
		fmt.Fprintln(out, "\n⚠️  Grade D. Review the financial position carefully.")
		return exitWeakGrade
	}
	return exitOK
}
