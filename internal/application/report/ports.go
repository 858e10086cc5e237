package report

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// Sheet hoja de cálculo: encabezados y filas en orden.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// SpreadsheetWriter genera un libro (xlsx) con las hojas indicadas.
type SpreadsheetWriter interface {
	Write(sheets ...Sheet) ([]byte, error)
}

// LabelRenderer genera la etiqueta imprimible (PDF) de una tarima.
type LabelRenderer interface {
	PalletLabel(p *entity.Pallet) ([]byte, error)
}

// File documento generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Tipos MIME de los documentos generados.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)
