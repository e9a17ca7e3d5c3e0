package report

import (
	"encoding/json"
	"fmt"
	"os"

	"fjacquet/cashflow-classifier/internal/fileutils"
	"fjacquet/cashflow-classifier/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator serializes run reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport renders the report in the specified format (json or yaml).
func (g *ReportGenerator) GenerateReport(report *Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return g.generateJSONReport(report)
	case FormatYAML, "yml":
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport renders the report and writes it atomically to path.
func (g *ReportGenerator) WriteReport(report *Report, format, path string) error {
	data, err := g.GenerateReport(report, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	g.logger.Info("Report written",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldRunID, report.RunID))
	return nil
}

func (g *ReportGenerator) generateJSONReport(report *Report) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

func (g *ReportGenerator) generateYAMLReport(report *Report) ([]byte, error) {
	yamlReport, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return yamlReport, nil
}
