package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"company-analyzer/internal/analysis"
	"company-analyzer/internal/types"
)

// Format specifies the output format for analysis reports
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatCSV  Format = "csv"
)

// notAvailable is printed for unknown figures and ratios.
const notAvailable = "N/A"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatText, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (valid options: text, json, csv)", s)
	}
}

func (f Format) extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Reporter handles generation and storage of analysis reports
type Reporter struct {
	outputDir string
	now       func() time.Time
}

// NewReporter creates a new reporter
func NewReporter(outputDir string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// GenerateReport renders result in the specified format
func (r *Reporter) GenerateReport(result *types.AnalysisResult, format Format) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no analysis result")
	}
	switch format {
	case FormatJSON:
		return r.generateJSONReport(result)
	case FormatText:
		return r.generateTextReport(result), nil
	case FormatCSV:
		return r.generateCSVReport(result)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveReport writes the report under the output directory and returns its path
func (r *Reporter) SaveReport(result *types.AnalysisResult, format Format) (string, error) {
	content, err := r.GenerateReport(result, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	timestamp := r.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_analysis_%s.%s", safeFileName(result.CompanyName), timestamp, format.extension())
	path := filepath.Join(r.outputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	return path, nil
}

// safeFileName replaces path separators and whitespace in a company name.
func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "company"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t':
			return '_'
		}
		return r
	}, name)
}

func (r *Reporter) generateJSONReport(result *types.AnalysisResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatRatio(v types.Value, unit string) string {
	s := v.StringFixed(2, notAvailable)
	if s == notAvailable {
		return s
	}
	return s + unit
}

func (r *Reporter) generateTextReport(result *types.AnalysisResult) string {
	var sb strings.Builder
	eval := result.Evaluation

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("FINANCIAL ANALYSIS REPORT - %s\n", result.CompanyName))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", r.now().Format("2006-01-02 15:04:05")))
	if info := result.BasicInfo; info.StockCode != "" {
		sb.WriteString(fmt.Sprintf("Stock Code: %s  Market: %s  Industry: %s\n", info.StockCode, info.Market, info.IndustryName))
	}
	if result.BasicInfo.FiscalDate != "" {
		sb.WriteString(fmt.Sprintf("Fiscal Date: %s\n", result.BasicInfo.FiscalDate))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Grade: %s %s (%s)\n", eval.Grade, eval.Emoji, eval.Status))
	sb.WriteString(fmt.Sprintf("Total Score: %d/100\n", eval.TotalScore))
	if info, ok := analysis.DescribeGrade(eval.Grade); ok {
		sb.WriteString(fmt.Sprintf("Grade Band: %d and above\n", info.MinScore))
	}
	sb.WriteString("\n")

	sb.WriteString("CATEGORY SCORES\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, c := range []struct {
		label string
		score int
	}{
		{"Profitability", eval.ProfitabilityScore},
		{"Stability", eval.StabilityScore},
		{"Growth", eval.GrowthScore},
		{"Activity", eval.ActivityScore},
	} {
		sb.WriteString(fmt.Sprintf("  %-15s %3d/100\n", c.label, c.score))
	}

	sb.WriteString("\n\nRATIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	var category analysis.Category
	for _, rs := range analysis.ScoreRatios(result.Ratios) {
		if rs.Def.Category != category {
			category = rs.Def.Category
			sb.WriteString(fmt.Sprintf("\n[%s]\n", strings.ToUpper(string(category))))
		}
		band := "-"
		if rs.Known {
			band = strconv.Itoa(rs.Score)
		}
		sb.WriteString(fmt.Sprintf("  • %s: %s (score %s)\n", rs.Def.Label, formatRatio(rs.Value, rs.Def.Unit), band))
	}

	sb.WriteString("\n\nFINANCIAL DATA\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	data := result.ExtractedData
	for _, f := range data.Fields() {
		sb.WriteString(fmt.Sprintf("  %-28s %s\n", f.Label, f.Value.StringFixed(0, notAvailable)))
	}

	sb.WriteString(fmt.Sprintf("\n\nRECOMMENDATIONS: %d\n", len(result.Recommendations)))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if len(result.Recommendations) == 0 {
		sb.WriteString("\nNo specific recommendations.\n")
	}
	for i, rec := range result.Recommendations {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString("END OF REPORT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	return sb.String()
}

func (r *Reporter) generateCSVReport(result *types.AnalysisResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	eval := result.Evaluation

	rows := [][]string{
		{"category", "metric", "value"},
		{"summary", "company", result.CompanyName},
		{"summary", "grade", string(eval.Grade)},
		{"summary", "status", eval.Status},
		{"summary", "total_score", strconv.Itoa(eval.TotalScore)},
		{"score", string(analysis.CategoryProfitability), strconv.Itoa(eval.ProfitabilityScore)},
		{"score", string(analysis.CategoryStability), strconv.Itoa(eval.StabilityScore)},
		{"score", string(analysis.CategoryGrowth), strconv.Itoa(eval.GrowthScore)},
		{"score", string(analysis.CategoryActivity), strconv.Itoa(eval.ActivityScore)},
	}
	for _, rs := range analysis.ScoreRatios(result.Ratios) {
		rows = append(rows, []string{string(rs.Def.Category), string(rs.Def.Key), rs.Value.StringFixed(2, notAvailable)})
	}
	for i, rec := range result.Recommendations {
		rows = append(rows, []string{"recommendation", strconv.Itoa(i + 1), rec})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
