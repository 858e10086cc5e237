package pdf_test

import (
	"bytes"
	"testing"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalletLabel_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoLabelGenerator()

	data, err := g.PalletLabel(&entity.Pallet{Code: "QR-1", AssignedWorker: "Rosa", PalletType: "americana", DateKey: "2024-05-01"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPalletLabel_SinCodigo(t *testing.T) {
	_, err := pdf.NewMarotoLabelGenerator().PalletLabel(&entity.Pallet{})
	assert.Error(t, err)
}
