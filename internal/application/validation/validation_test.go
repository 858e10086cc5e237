package validation_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/Almacen-api/internal/application/validation"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linea struct {
	Type  string `json:"type" validate:"required"`
	Count int    `json:"count" validate:"gt=0"`
}

type carga struct {
	Carrier string  `json:"carrier" validate:"required"`
	Inside  *int    `json:"pallets_inside" validate:"required,gte=0"`
	Items   []linea `json:"items" validate:"required,min=1,dive"`
}

func TestStruct_ReportaNombresJSON(t *testing.T) {
	v := validation.New()

	err := v.Struct(carga{Items: []linea{{Type: "A", Count: 0}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"carrier", "pallets_inside", "items[0].count"}, verr.Fields)
}

func TestStruct_PunteroEnCeroEsValido(t *testing.T) {
	v := validation.New()
	zero := 0

	err := v.Struct(carga{Carrier: "TX", Inside: &zero, Items: []linea{{Type: "A", Count: 3}}})
	assert.NoError(t, err)
}
