// Package pdf genera la hoja de firma de un acta (procès-verbal) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de acta + N°  │  Fecha de firma               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRATO: referencia, vigencias, frecuencia, plazo          │
//	│  PROVEEDOR: nombre + contacto                                │
//	│  INTERVENCIÓN (opcional)                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Equipo | Tipo | N° de serie                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESERVAS                                                    │
//	│  FIRMAS: proveedor │ administración  + QR de referencia       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const displayDate = "02/01/2006"

var titleCaser = cases.Title(language.French)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PVSheetGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ report.PVSheetGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePVSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePVSheet(_ context.Context, sheet report.PVSheet) ([]byte, error) {
	if sheet.PV == nil || sheet.Contract == nil || sheet.Supplier == nil {
		return nil, fmt.Errorf("pdf: acta incompleta")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Procès-verbal "+sheet.Contract.MarketReference, true).
		WithAuthor(sheet.Supplier.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet.PV))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contractRow(sheet.Contract, sheet.Manager))
	m.AddRows(supplierRow(sheet.Supplier))
	if sheet.Intervention != nil {
		m.AddRows(interventionRow(sheet.Intervention))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(equipmentRows(sheet.Equipment)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(reservationsRows(sheet.PV.Reservations)...)
	m.AddRows(line.NewRow(4))
	m.AddRows(signatureRow(sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(pv *entity.PV) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("PROCÈS-VERBAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(titleCaser.String(pv.Type), props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("N° %06d", pv.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Signé le "+pv.SignedOn.Format(displayDate), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func contractRow(c *entity.Contract, manager *entity.User) core.Row {
	managerName := "-"
	if manager != nil {
		managerName = manager.Username
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CONTRAT "+c.MarketReference, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Début: %s   |   Fin de garantie: %s   |   Fin de maintenance: %s",
				c.StartDate.Format(displayDate),
				c.WarrantyEnd.Format(displayDate),
				c.MaintenanceEnd.Format(displayDate),
			), props.Text{Size: 8, Top: 7}),
			text.New(fmt.Sprintf("Visites: %s   |   Délai d'intervention: %dh   |   Gestionnaire: %s",
				frequencyLabel(c.VisitFrequency), c.ResponseTimeHours, managerName,
			), props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
	)
}

func supplierRow(s *entity.Supplier) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FOURNISSEUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Tél: %s   |   Adresse: %s",
				nonEmpty(s.Email, "-"),
				nonEmpty(s.Phone, "-"),
				nonEmpty(oneLine(s.Address), "-"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func interventionRow(it *entity.Intervention) core.Row {
	kind := "Corrective"
	if it.Type == entity.InterventionPreventive {
		kind = "Préventive"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("INTERVENTION %s DU %s", strings.ToUpper(kind), it.IntervenedAt.Format(displayDate)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(oneLine(it.Description), props.Text{Size: 8, Top: 7}),
		),
	)
}

// tableHeaderRow cabecera de la tabla de equipos.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Équipement", 6),
		h("Type", 3),
		h("N° de série", 3),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func equipmentRows(list []*entity.Equipment) []core.Row {
	if len(list) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Aucun équipement rattaché au contrat.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(list))
	for _, e := range list {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(e.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(string(e.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(e.SerialNumber, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

func reservationsRows(reservations string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RÉSERVES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	if strings.TrimSpace(reservations) == "" {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sans réserve.", props.Text{Size: 8, Top: 1}),
		)))
	}
	for _, l := range strings.Split(reservations, "\n") {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 8, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// signatureRow dos bloques de firma y un QR con la referencia del acta.
func signatureRow(sheet report.PVSheet) core.Row {
	ref := fmt.Sprintf("PV-%d|%s|%s", sheet.PV.ID, sheet.Contract.MarketReference, sheet.PV.SignedOn.Format(entity.DateLayout))
	block := func(title string) core.Col {
		return col.New(4).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New("Nom, date et signature", props.Text{Size: 7, Top: 6, Color: colorGray}),
		)
	}
	return row.New(40).Add(
		block("Pour le fournisseur"),
		block("Pour l'administration"),
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 80, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func frequencyLabel(f entity.VisitFrequency) string {
	switch f {
	case entity.FrequencyMonthly:
		return "mensuelle"
	case entity.FrequencyQuarterly:
		return "trimestrielle"
	case entity.FrequencySemiannual:
		return "semestrielle"
	case entity.FrequencyAnnual:
		return "annuelle"
	}
	return string(f)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
