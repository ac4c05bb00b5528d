package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"solarqc/domain/table"
	"solarqc/internal/analysis"
	"solarqc/ports"
)

// RenderWorkbook writes the run as an Excel workbook with one sheet per
// report section
func (r *Renderer) RenderWorkbook(ctx context.Context, bundle ports.ReportBundle, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return err
	}
	if err := writeSummarySheet(f, bundle); err != nil {
		return err
	}
	if err := writeProfileSheet(f, bundle); err != nil {
		return err
	}
	if err := writeMatrixSheet(f, "Correlation", bundle.Pearson); err != nil {
		return err
	}
	if err := writeMatrixSheet(f, "Spearman", bundle.Spearman); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	r.log.Info("workbook written to %s", path)
	return nil
}

func writeSummarySheet(f *excelize.File, bundle ports.ReportBundle) error {
	const sheet = "Summary"
	rep := bundle.Report
	if rep == nil {
		return writeRow(f, sheet, 1, "No cleaning report available")
	}

	rows := [][]interface{}{
		{"Run", string(rep.RunID)},
		{"Created", rep.CreatedAt.String()},
		{"Source", rep.Source},
		{"Source hash", rep.SourceHash.Short()},
		{"Z-score threshold", rep.Threshold},
		{"Rows in", rep.RowsIn},
		{"Rows out", rep.RowsOut},
		{"Rows dropped missing", rep.RowsDroppedMissing},
		{"Rows dropped as outliers", rep.RowsDroppedOutlier},
	}
	rowIdx := 1
	for _, cells := range rows {
		if err := writeRow(f, sheet, rowIdx, cells...); err != nil {
			return err
		}
		rowIdx++
	}

	rowIdx++
	if err := writeRow(f, sheet, rowIdx,
		"Column", "Missing", "Missing %", "Outliers", "Imputed", "Mean", "Std dev", "Median"); err != nil {
		return err
	}
	for _, c := range rep.Columns {
		rowIdx++
		if err := writeRow(f, sheet, rowIdx,
			c.Column, c.Missing, c.MissingPct, c.Outliers, c.Imputed,
			c.Mean, c.StdDev, c.Median); err != nil {
			return err
		}
	}

	if len(rep.Warnings) > 0 {
		rowIdx += 2
		if err := writeRow(f, sheet, rowIdx, "Warning", "Column", "Detail"); err != nil {
			return err
		}
		for _, w := range rep.Warnings {
			rowIdx++
			if err := writeRow(f, sheet, rowIdx, string(w.Kind), w.Column, w.Detail); err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(sheet, "A", "A", 26)
}

func writeProfileSheet(f *excelize.File, bundle ports.ReportBundle) error {
	prof := bundle.Profile
	if prof == nil || len(prof.Profiles) == 0 {
		return nil
	}
	const sheet = "Profiles"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1,
		"Column", "Type", "Count", "Missing", "Missing rate",
		"Mean", "Std dev", "Min", "Q25", "Median", "Q75", "Max",
		"Skewness", "Kurtosis", "IQR outliers", "Zeros", "Negatives"); err != nil {
		return err
	}
	for i, p := range prof.Profiles {
		rowIdx := i + 2
		cells := []interface{}{p.Column, string(p.Type), p.Count, p.Missing, p.MissingRate}
		if p.Type == table.ValueTypeFloat || p.Type == table.ValueTypeInteger {
			cells = append(cells,
				p.Summary.Mean, p.Summary.StdDev, p.Summary.Min, p.Summary.Q25,
				p.Summary.Median, p.Summary.Q75, p.Summary.Max,
				p.Shape.Skewness, p.Shape.Kurtosis, p.IQROutliers,
				p.ZeroCount, p.NegativeCount)
		}
		if err := writeRow(f, sheet, rowIdx, cells...); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "B", 16)
}

func writeMatrixSheet(f *excelize.File, sheet string, m *analysis.Matrix) error {
	if m == nil || m.Size() < 2 {
		return nil
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, m.Size()+1)
	header = append(header, "")
	for _, col := range m.Columns {
		header = append(header, col)
	}
	if err := writeRow(f, sheet, 1, header...); err != nil {
		return err
	}
	for i, col := range m.Columns {
		cells := make([]interface{}, 0, m.Size()+1)
		cells = append(cells, col)
		for j := range m.Columns {
			cells = append(cells, m.At(i, j))
		}
		if err := writeRow(f, sheet, i+2, cells...); err != nil {
			return err
		}
	}
	return nil
}

// writeRow sets one row of cells starting at column A
func writeRow(f *excelize.File, sheet string, rowIdx int, cells ...interface{}) error {
	for i, v := range cells {
		ref, err := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, ref, v); err != nil {
			return err
		}
	}
	return nil
}
