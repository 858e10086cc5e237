// Package excel implementa report.SpreadsheetWriter con excelize.
package excel

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/xuri/excelize/v2"
)

// Writer genera libros xlsx en memoria.
type Writer struct{}

var _ report.SpreadsheetWriter = (*Writer)(nil)

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

// Write crea una hoja por cada Sheet, con encabezados en negrita en la fila 1.
func (w *Writer) Write(sheets ...report.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	for i, s := range sheets {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Hoja%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("excel: nueva hoja: %w", err)
		}
		if err := writeSheet(f, name, s, bold); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, s report.Sheet, headerStyle int) error {
	for c, h := range s.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	if len(s.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range s.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
