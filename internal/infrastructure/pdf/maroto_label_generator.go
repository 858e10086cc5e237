// Package pdf genera la etiqueta imprimible de una tarima con Maroto v2.
//
// Layout de la página A6:
//
//	┌──────────────────────────────┐
//	│  TARIMA  ·  fecha            │
//	│  ──────────────────────────  │
//	│            [ QR ]            │
//	│          código              │
//	│  ──────────────────────────  │
//	│  Trabajadora │ Tipo          │
//	└──────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/report"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoLabelGenerator implementa report.LabelRenderer usando Maroto v2.
type MarotoLabelGenerator struct{}

var _ report.LabelRenderer = (*MarotoLabelGenerator)(nil)

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// PalletLabel genera el PDF y devuelve sus bytes.
func (g *MarotoLabelGenerator) PalletLabel(p *entity.Pallet) ([]byte, error) {
	if p == nil || p.Code == "" {
		return nil, fmt.Errorf("pdf: tarima sin código")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta de tarima "+p.Code, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(qrRows(p)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(detailRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(p *entity.Pallet) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("TARIMA", props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		})),
		col.New(6).Add(text.New(p.DateKey, props.Text{
			Size: 10, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

func qrRows(p *entity.Pallet) []core.Row {
	return []core.Row{
		row.New(60).Add(col.New(12).Add(code.NewQr(p.Code, props.Rect{Percent: 95, Center: true}))),
		row.New(8).Add(col.New(12).Add(text.New(p.Code, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1,
		}))),
	}
}

func detailRow(p *entity.Pallet) core.Row {
	return row.New(10).Add(
		col.New(7).Add(
			text.New("Trabajadora", props.Text{Size: 6.5, Color: colorGray, Top: 1}),
			text.New(nonEmpty(p.AssignedWorker, "-"), props.Text{Size: 9, Top: 4}),
		),
		col.New(5).Add(
			text.New("Tipo", props.Text{Size: 6.5, Color: colorGray, Top: 1}),
			text.New(nonEmpty(p.PalletType, "-"), props.Text{Size: 9, Top: 4}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
