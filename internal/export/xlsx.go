package export

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"platformsdk/internal/aging"
)

// Workbook builds an XLSX file holding invoice and aging sheets.
type Workbook struct {
	f      *excelize.File
	bold   int
	sheets int
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() (*Workbook, error) {
	const op = "NewWorkbook"

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: failed to create header style: %w", op, err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Creator: "platformsdk", Title: "Invoices"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: failed to set document properties: %w", op, err)
	}

	return &Workbook{f: f, bold: bold}, nil
}

// addSheet creates a sheet, reusing the default one for the first sheet.
func (w *Workbook) addSheet(name string) error {
	if w.sheets == 0 {
		w.sheets++
		return w.f.SetSheetName(w.f.GetSheetName(0), name)
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	w.sheets++
	return nil
}

func (w *Workbook) writeRow(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func (w *Workbook) writeHeader(sheet string, headers []any) error {
	if err := w.writeRow(sheet, 1, headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.bold); err != nil {
		return err
	}
	return w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// AddInvoices writes one row per exported invoice to a new sheet.
func (w *Workbook) AddInvoices(sheet string, rows []Row) error {
	const op = "AddInvoices"

	if err := w.addSheet(sheet); err != nil {
		return fmt.Errorf("%s: failed to create sheet %s: %w", op, sheet, err)
	}
	if err := w.writeHeader(sheet, Headers()); err != nil {
		return fmt.Errorf("%s: failed to write headers: %w", op, err)
	}
	for i, r := range rows {
		if err := w.writeRow(sheet, i+2, Values(r)); err != nil {
			return fmt.Errorf("%s: failed to write row %d: %w", op, i+2, err)
		}
	}
	if len(rows) > 0 {
		ref := fmt.Sprintf("A1:%s%d", LastColumn(), len(rows)+1)
		if err := w.f.AutoFilter(sheet, ref, nil); err != nil {
			return fmt.Errorf("%s: failed to add filter: %w", op, err)
		}
	}
	return nil
}

// AddAging writes an aging report to a new sheet, one row per currency.
func (w *Workbook) AddAging(sheet string, report *aging.Report) error {
	const op = "AddAging"

	if err := w.addSheet(sheet); err != nil {
		return fmt.Errorf("%s: failed to create sheet %s: %w", op, sheet, err)
	}

	headers := []any{"Currency"}
	for _, b := range aging.Buckets {
		headers = append(headers, b.String())
	}
	headers = append(headers, "Total", "Invoices")
	if err := w.writeHeader(sheet, headers); err != nil {
		return fmt.Errorf("%s: failed to write headers: %w", op, err)
	}

	for i, row := range report.Rows {
		values := []any{row.Currency}
		for _, b := range aging.Buckets {
			values = append(values, row.Amount(b).InexactFloat64())
		}
		values = append(values, row.Total.InexactFloat64(), row.Count)
		if err := w.writeRow(sheet, i+2, values); err != nil {
			return fmt.Errorf("%s: failed to write row %d: %w", op, i+2, err)
		}
	}

	note, err := excelize.CoordinatesToCellName(1, len(report.Rows)+3)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return w.f.SetCellValue(sheet, note, "As of "+report.AsOf.String())
}

// Write serializes the workbook.
func (w *Workbook) Write(out io.Writer) error {
	if _, err := w.f.WriteTo(out); err != nil {
		return fmt.Errorf("Write: failed to write workbook: %w", err)
	}
	return nil
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Save: failed to create %s: %w", path, err)
	}
	if err := w.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}
