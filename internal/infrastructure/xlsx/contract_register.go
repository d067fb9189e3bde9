// Package xlsx exporta el registro de contratos a un libro Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/contracts-api/internal/application/report"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// SheetName hoja única del libro.
const SheetName = "Contrats"

// ContractRegisterHeader columnas del registro, en orden.
var ContractRegisterHeader = []string{
	"Référence marché",
	"Fournisseur",
	"Gestionnaire",
	"Début",
	"Fin de garantie",
	"Fin de maintenance",
	"Fréquence des visites",
	"Délai d'intervention (h)",
	"Statut",
	"Équipements",
	"Échéance < 30 j",
}

var columnWidths = []float64{22, 28, 18, 12, 14, 16, 18, 20, 12, 12, 14}

// Exporter implementa report.ContractRegisterExporter con excelize.
type Exporter struct{}

var _ report.ContractRegisterExporter = (*Exporter)(nil)

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportContracts escribe una fila por contrato y devuelve el .xlsx en memoria.
// Las filas por vencer se resaltan.
func (x *Exporter) ExportContracts(_ context.Context, rows []report.ContractRegisterRow, asOf time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	expiringStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FDE9D9"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de vencimiento: %w", err)
	}

	for i, h := range ContractRegisterHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[i]); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(ContractRegisterHeader), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastCol, headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		c := r.Contract
		values := []any{
			c.MarketReference,
			r.SupplierName,
			r.ManagerName,
			c.StartDate.Format(entity.DateLayout),
			c.WarrantyEnd.Format(entity.DateLayout),
			c.MaintenanceEnd.Format(entity.DateLayout),
			string(c.VisitFrequency),
			c.ResponseTimeHours,
			string(c.Status),
			r.EquipmentCount,
			yesNo(r.ExpiringSoon),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, line)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d col %d: %w", line, j+1, err)
			}
		}
		if r.ExpiringSoon {
			first, _ := excelize.CoordinatesToCellName(1, line)
			last, _ := excelize.CoordinatesToCellName(len(values), line)
			if err := f.SetCellStyle(SheetName, first, last, expiringStyle); err != nil {
				return nil, fmt.Errorf("xlsx: estilo fila %d: %w", line, err)
			}
		}
	}

	// cabecera fija al desplazar
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: fijar cabecera: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Registre des contrats de maintenance",
		Created: asOf.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("xlsx: propiedades: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}
