package excel_test

import (
	"bytes"
	"testing"

	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite_HojaConEncabezadosYFilas(t *testing.T) {
	data, err := excel.NewWriter().Write(report.Sheet{
		Name:    "Tarimas",
		Headers: []string{"Fecha", "Código", "Cajas"},
		Rows:    [][]any{{"2024-05-01", "QR-1", 48}, {"2024-05-01", "QR-2", nil}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Tarimas"}, f.GetSheetList())
	rows, err := f.GetRows("Tarimas")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Fecha", "Código", "Cajas"}, rows[0])
	assert.Equal(t, []string{"2024-05-01", "QR-1", "48"}, rows[1])
}
