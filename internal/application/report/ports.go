package report

import (
	"context"
	"time"

	"github.com/jhoicas/contracts-api/internal/domain/entity"
)

// PVSheet datos necesarios para imprimir la hoja de firma de un acta.
type PVSheet struct {
	PV           *entity.PV
	Contract     *entity.Contract
	Supplier     *entity.Supplier
	Manager      *entity.User
	Intervention *entity.Intervention // nil si el acta es del contrato
	Equipment    []*entity.Equipment
}

// PVSheetGenerator genera el PDF de la hoja de firma.
type PVSheetGenerator interface {
	GeneratePVSheet(ctx context.Context, sheet PVSheet) ([]byte, error)
}

// ContractRegisterRow una fila del registro de contratos.
type ContractRegisterRow struct {
	Contract       *entity.Contract
	SupplierName   string
	ManagerName    string
	EquipmentCount int
	ExpiringSoon   bool
}

// ContractRegisterExporter genera el libro .xlsx del registro de contratos.
type ContractRegisterExporter interface {
	ExportContracts(ctx context.Context, rows []ContractRegisterRow, asOf time.Time) ([]byte, error)
}
