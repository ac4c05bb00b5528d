// Package app wires the ports together into the profile, clean, chart
// and report workflows the CLI exposes.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"solarqc/domain/cleaning"
	"solarqc/domain/core"
	"solarqc/domain/table"
	"solarqc/internal"
	"solarqc/internal/analysis"
	"solarqc/internal/config"
	"solarqc/internal/profiling"
	"solarqc/ports"
)

// WorkflowService orchestrates a cleaning run end to end
type WorkflowService struct {
	reader   ports.DatasetReader
	writer   ports.DatasetWriter
	charts   ports.ChartRenderer
	reports  ports.ReportRenderer
	profiler *profiling.Profiler
	cfg      *config.Config
	log      *internal.Logger
}

// NewWorkflowService creates the service with its collaborators injected
func NewWorkflowService(
	reader ports.DatasetReader,
	writer ports.DatasetWriter,
	charts ports.ChartRenderer,
	reports ports.ReportRenderer,
	cfg *config.Config,
) *WorkflowService {
	return &WorkflowService{
		reader:   reader,
		writer:   writer,
		charts:   charts,
		reports:  reports,
		profiler: profiling.NewProfiler(profiling.DefaultProfilingConfig()),
		cfg:      cfg,
		log:      internal.DefaultLogger.WithComponent("Workflow"),
	}
}

// RunResult aggregates everything a run produced. Stages that did not
// execute leave their fields nil.
type RunResult struct {
	Source   string
	Raw      *table.Dataset
	Cleaned  *table.Dataset
	Report   *cleaning.Report
	Profile  *profiling.ProfilingResult
	Pearson  *analysis.Matrix
	Spearman *analysis.Matrix
	Charts   []ports.ChartArtifact
	Outputs  []string
}

// RunID returns the cleaning run's identifier, empty before cleaning ran
func (r *RunResult) RunID() core.RunID {
	if r == nil || r.Report == nil {
		return ""
	}
	return r.Report.RunID
}

// RunProfile loads the source file and profiles every column
func (s *WorkflowService) RunProfile(ctx context.Context, path string) (*profiling.ProfilingResult, error) {
	ds, _, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiler.ProfileDataset(ds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to profile %s: %w", path, err)
	}
	s.log.Info("profiled %s (%d columns over %d rows)", ds.Name, len(profile.Profiles), profile.Rows)
	return profile, nil
}

// RunClean loads the source file, cleans the target columns and writes
// the cleaned dataset back out as CSV.
func (s *WorkflowService) RunClean(ctx context.Context, path string) (*RunResult, error) {
	result, err := s.cleanStage(ctx, path)
	if err != nil {
		return nil, err
	}

	outPath := s.cleanedPath(path)
	if err := s.writer.WriteDataset(ctx, result.Cleaned, outPath); err != nil {
		return nil, fmt.Errorf("failed to write cleaned dataset: %w", err)
	}
	result.Outputs = append(result.Outputs, outPath)
	return result, nil
}

// RunCharts cleans the source file and renders the figure set without
// writing the cleaned dataset or reports.
func (s *WorkflowService) RunCharts(ctx context.Context, path string) (*RunResult, error) {
	result, err := s.cleanStage(ctx, path)
	if err != nil {
		return nil, err
	}
	s.correlate(result)

	if err := s.chartStage(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// RunAll executes the full pipeline: profile, clean, write the cleaned
// dataset, render figures and write every report format.
func (s *WorkflowService) RunAll(ctx context.Context, path string) (*RunResult, error) {
	result, err := s.cleanStage(ctx, path)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiler.ProfileDataset(result.Raw, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to profile %s: %w", path, err)
	}
	result.Profile = profile
	s.correlate(result)

	outPath := s.cleanedPath(path)
	if err := s.writer.WriteDataset(ctx, result.Cleaned, outPath); err != nil {
		return nil, fmt.Errorf("failed to write cleaned dataset: %w", err)
	}
	result.Outputs = append(result.Outputs, outPath)

	if err := s.chartStage(ctx, result); err != nil {
		return nil, err
	}
	if err := s.reportStage(ctx, result); err != nil {
		return nil, err
	}

	s.log.Info("run %s complete: %d rows in, %d rows out, %d artifacts",
		result.RunID(), result.Report.RowsIn, result.Report.RowsOut, len(result.Outputs))
	return result, nil
}

// load reads the source dataset and fingerprints the file bytes
func (s *WorkflowService) load(ctx context.Context, path string) (*table.Dataset, core.SourceHash, error) {
	opts := ports.ReadOptions{
		TimestampColumn: s.cfg.Data.TimestampColumn,
		SampleRows:      s.cfg.Data.SampleRows,
	}
	ds, err := s.reader.ReadDataset(ctx, path, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var hash core.SourceHash
	if raw, readErr := os.ReadFile(path); readErr == nil {
		hash = core.NewSourceHash(raw)
	} else {
		s.log.Warn("could not fingerprint %s: %v", path, readErr)
	}
	return ds, hash, nil
}

// cleanStage runs ingest plus cleaning and stamps the report with the
// source identity.
func (s *WorkflowService) cleanStage(ctx context.Context, path string) (*RunResult, error) {
	ds, hash, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}

	cleaned, report, err := cleaning.Clean(ds, s.cfg.Data.TargetColumns, cleaning.Config{
		ZThreshold: s.cfg.Cleaning.ZThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clean %s: %w", path, err)
	}
	report.Source = path
	report.SourceHash = hash

	s.log.Info("run %s cleaned %s: %d rows in, %d rows out (%d missing, %d outliers)",
		report.RunID, ds.Name, report.RowsIn, report.RowsOut,
		report.RowsDroppedMissing, report.RowsDroppedOutlier)

	return &RunResult{
		Source:  path,
		Raw:     ds,
		Cleaned: cleaned,
		Report:  report,
	}, nil
}

// correlate fills in the correlation matrices over the cleaned numeric
// columns. Fewer than two numeric columns leaves the matrices nil.
func (s *WorkflowService) correlate(result *RunResult) {
	columns := numericColumns(result.Cleaned)
	if len(columns) < 2 {
		return
	}

	pearson, err := analysis.CorrelationMatrix(result.Cleaned, columns)
	if err != nil {
		s.log.Warn("skipping correlations: %v", err)
		return
	}
	result.Pearson = pearson

	spearman, err := analysis.SpearmanMatrix(result.Cleaned, columns)
	if err != nil {
		s.log.Warn("skipping rank correlations: %v", err)
		return
	}
	result.Spearman = spearman
}

func (s *WorkflowService) chartStage(ctx context.Context, result *RunResult) error {
	artifacts, err := s.charts.RenderAll(ctx, ports.ChartRequest{
		Raw:     result.Raw,
		Cleaned: result.Cleaned,
		Columns: s.cfg.Data.TargetColumns,
		Matrix:  result.Pearson,
		OutDir:  s.cfg.Output.Dir,
	})
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	result.Charts = artifacts
	for _, a := range artifacts {
		result.Outputs = append(result.Outputs, a.Path)
	}
	return nil
}

func (s *WorkflowService) reportStage(ctx context.Context, result *RunResult) error {
	bundle := ports.ReportBundle{
		Report:   result.Report,
		Profile:  result.Profile,
		Pearson:  result.Pearson,
		Spearman: result.Spearman,
		Charts:   result.Charts,
	}

	mdPath := filepath.Join(s.cfg.Output.Dir, "report.md")
	if err := s.reports.RenderMarkdown(ctx, bundle, mdPath); err != nil {
		return fmt.Errorf("failed to render markdown report: %w", err)
	}
	result.Outputs = append(result.Outputs, mdPath)

	if s.cfg.Output.ReportHTML {
		htmlPath := filepath.Join(s.cfg.Output.Dir, "report.html")
		if err := s.reports.RenderHTML(ctx, bundle, htmlPath); err != nil {
			return fmt.Errorf("failed to render HTML report: %w", err)
		}
		result.Outputs = append(result.Outputs, htmlPath)
	}

	if s.cfg.Output.Workbook {
		wbPath := filepath.Join(s.cfg.Output.Dir, "report.xlsx")
		if err := s.reports.RenderWorkbook(ctx, bundle, wbPath); err != nil {
			return fmt.Errorf("failed to render workbook: %w", err)
		}
		result.Outputs = append(result.Outputs, wbPath)
	}
	return nil
}

// cleanedPath derives the cleaned CSV location from the input filename
// unless the configuration names one explicitly.
func (s *WorkflowService) cleanedPath(input string) string {
	name := s.cfg.Output.CleanedName
	if name == "" {
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + "_clean.csv"
	}
	return filepath.Join(s.cfg.Output.Dir, name)
}

// numericColumns lists the dataset's numeric columns in column order
func numericColumns(ds *table.Dataset) []string {
	var out []string
	for _, col := range ds.Columns {
		switch ds.ColumnType(col) {
		case table.ValueTypeFloat, table.ValueTypeInteger:
			out = append(out, col)
		}
	}
	return out
}
