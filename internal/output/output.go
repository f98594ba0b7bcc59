// Package output provides formatting and file writing for conversion reports.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nirzaf/mdx2txt/internal/converter"
)

// Format represents an output format type.
type Format string

const (
	// FormatJSON outputs as JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML outputs as TOML.
	FormatTOML Format = "toml"
	// FormatXML outputs as generic XML.
	FormatXML Format = "xml"
	// FormatJUnit outputs as JUnit XML for CI/CD integration.
	FormatJUnit Format = "junit"
	// FormatMarkdown outputs as a Markdown report.
	FormatMarkdown Format = "markdown"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatXML),
		string(FormatJUnit),
		string(FormatMarkdown),
	}
}

// IsValidFormat checks if a format string is valid.
func IsValidFormat(s string) bool {
	switch Format(strings.ToLower(s)) {
	case FormatJSON, FormatYAML, FormatTOML, FormatXML, FormatJUnit, FormatMarkdown:
		return true
	default:
		return false
	}
}

// Report contains all data needed for output formatting.
type Report struct {
	GeneratedAt time.Time
	SourceDir   string
	TargetDir   string
	Extension   string
	Files       []string
	Summary     converter.Summary
	Results     []converter.Result

	// Stats is the optional performance breakdown, as returned by
	// stats.Stats.ToJSON. Omitted from reports when nil.
	Stats map[string]any
}

// NewReport builds a report for a finished batch.
func NewReport(sourceDir, targetDir, extension string, results []converter.Result) *Report {
	files := make([]string, len(results))
	for i, r := range results {
		files[i] = r.Source
	}
	return &Report{
		GeneratedAt: time.Now(),
		SourceDir:   sourceDir,
		TargetDir:   targetDir,
		Extension:   extension,
		Files:       files,
		Summary:     converter.Summarize(results),
		Results:     results,
	}
}

// Formatter is the interface that output formatters implement.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// GetFormatter returns the appropriate formatter for a format.
func GetFormatter(format Format) (Formatter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatTOML:
		return &TOMLFormatter{}, nil
	case FormatXML:
		return &XMLFormatter{}, nil
	case FormatJUnit:
		return &JUnitFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// FormatReport formats a report using the specified format.
func FormatReport(report *Report, format Format) ([]byte, error) {
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}
	return formatter.Format(report)
}

// InferFormat determines the output format from a filename extension.
func InferFormat(filename string) (Format, error) {
	// Handle special case for JUnit
	if strings.HasSuffix(strings.ToLower(filename), ".junit.xml") {
		return FormatJUnit, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf(
			"cannot infer format from extension %q (supported: .json, .yaml, .yml, .toml, .xml, .junit.xml, .md, .markdown)",
			ext,
		)
	}
}

// WriteToFile writes a formatted report to a file.
func WriteToFile(report *Report, filename string) error {
	format, err := InferFormat(filename)
	if err != nil {
		return err
	}

	data, err := FormatReport(report, format)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}

// document is the tree shared by the JSON, YAML and TOML formatters.
type document struct {
	GeneratedAt string          `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	SourceDir   string          `json:"source_dir" yaml:"source_dir" toml:"source_dir"`
	TargetDir   string          `json:"target_dir" yaml:"target_dir" toml:"target_dir"`
	Extension   string          `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty"`
	Summary     documentSummary `json:"summary" yaml:"summary" toml:"summary"`
	Files       []documentFile  `json:"files" yaml:"files" toml:"files"`
	Stats       map[string]any  `json:"stats,omitempty" yaml:"stats,omitempty" toml:"stats,omitempty"`
}

type documentSummary struct {
	Total        int `json:"total" yaml:"total" toml:"total"`
	Converted    int `json:"converted" yaml:"converted" toml:"converted"`
	Failed       int `json:"failed" yaml:"failed" toml:"failed"`
	BytesRead    int `json:"bytes_read" yaml:"bytes_read" toml:"bytes_read"`
	BytesWritten int `json:"bytes_written" yaml:"bytes_written" toml:"bytes_written"`
}

type documentFile struct {
	Source       string `json:"source" yaml:"source" toml:"source"`
	Target       string `json:"target" yaml:"target" toml:"target"`
	Status       string `json:"status" yaml:"status" toml:"status"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	BytesRead    int    `json:"bytes_read" yaml:"bytes_read" toml:"bytes_read"`
	BytesWritten int    `json:"bytes_written" yaml:"bytes_written" toml:"bytes_written"`
}

func newDocument(report *Report) document {
	doc := document{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		SourceDir:   report.SourceDir,
		TargetDir:   report.TargetDir,
		Extension:   report.Extension,
		Summary:     documentSummary(report.Summary),
		Files:       make([]documentFile, 0, len(report.Results)),
		Stats:       report.Stats,
	}

	for _, r := range report.Results {
		doc.Files = append(doc.Files, documentFile{
			Source:       r.Source,
			Target:       r.Target,
			Status:       r.Status(),
			Error:        r.ErrorString(),
			BytesRead:    r.BytesRead,
			BytesWritten: r.BytesWritten,
		})
	}

	return doc
}
