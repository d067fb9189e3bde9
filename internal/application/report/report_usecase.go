// Package report arma los documentos descargables: hoja de firma de actas (PDF)
// y registro de contratos (XLSX). Los archivos se generan en memoria, no se almacenan.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/contracts-api/internal/application/usecase"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

// ReportUseCase genera documentos a partir del estado actual.
type ReportUseCase struct {
	repos     repository.Repos
	contracts *usecase.ContractUseCase
	pdf       PVSheetGenerator
	xlsx      ContractRegisterExporter
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando los generadores.
func NewReportUseCase(repos repository.Repos, contracts *usecase.ContractUseCase, pdf PVSheetGenerator, xlsx ContractRegisterExporter) *ReportUseCase {
	return &ReportUseCase{repos: repos, contracts: contracts, pdf: pdf, xlsx: xlsx, now: time.Now}
}

// PVSheet devuelve el PDF de la hoja de firma del acta y un nombre de archivo sugerido.
func (uc *ReportUseCase) PVSheet(ctx context.Context, pvID int64) ([]byte, string, error) {
	pv, err := uc.repos.PVs.GetByID(ctx, pvID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener acta: %w", err)
	}
	if pv == nil {
		return nil, "", domain.ErrNotFound
	}
	contract, err := uc.repos.Contracts.GetByID(ctx, pv.ContractID)
	if err != nil || contract == nil {
		return nil, "", fmt.Errorf("pdf: obtener contrato %d: %w", pv.ContractID, errOrNotFound(err))
	}
	supplier, err := uc.repos.Suppliers.GetByID(ctx, contract.SupplierID)
	if err != nil || supplier == nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor %d: %w", contract.SupplierID, errOrNotFound(err))
	}
	manager, err := uc.repos.Users.GetByID(ctx, contract.ManagerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener gestor: %w", err)
	}
	sheet := PVSheet{PV: pv, Contract: contract, Supplier: supplier, Manager: manager}
	if pv.InterventionID != nil {
		if sheet.Intervention, err = uc.repos.Interventions.GetByID(ctx, *pv.InterventionID); err != nil {
			return nil, "", fmt.Errorf("pdf: obtener intervención: %w", err)
		}
	}
	if sheet.Equipment, err = uc.repos.Contracts.ListEquipment(ctx, contract.ID); err != nil {
		return nil, "", fmt.Errorf("pdf: obtener equipos: %w", err)
	}

	pdfBytes, err := uc.pdf.GeneratePVSheet(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pv-%d-%s.pdf", pv.ID, pv.SignedOn.Format(entity.DateLayout)), nil
}

// ContractRegister exporta los contratos que cumplen el filtro a un libro .xlsx.
func (uc *ReportUseCase) ContractRegister(ctx context.Context, q usecase.ContractQuery) ([]byte, string, error) {
	contracts, err := uc.contracts.ListEntities(ctx, q)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	suppliers := map[int64]string{}
	managers := map[int64]string{}
	rows := make([]ContractRegisterRow, 0, len(contracts))
	for _, c := range contracts {
		name, ok := suppliers[c.SupplierID]
		if !ok {
			s, err := uc.repos.Suppliers.GetByID(ctx, c.SupplierID)
			if err != nil {
				return nil, "", err
			}
			if s != nil {
				name = s.Name
			}
			suppliers[c.SupplierID] = name
		}
		manager, ok := managers[c.ManagerID]
		if !ok {
			u, err := uc.repos.Users.GetByID(ctx, c.ManagerID)
			if err != nil {
				return nil, "", err
			}
			if u != nil {
				manager = u.Username
			}
			managers[c.ManagerID] = manager
		}
		equipment, err := uc.repos.Contracts.ListEquipment(ctx, c.ID)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, ContractRegisterRow{
			Contract:       c,
			SupplierName:   name,
			ManagerName:    manager,
			EquipmentCount: len(equipment),
			ExpiringSoon:   c.IsExpiringSoon(now),
		})
	}
	data, err := uc.xlsx.ExportContracts(ctx, rows, now)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: generar: %w", err)
	}
	return data, fmt.Sprintf("contrats-%s.xlsx", entity.DateOf(now).Format(entity.DateLayout)), nil
}

func errOrNotFound(err error) error {
	if err != nil {
		return err
	}
	return domain.ErrNotFound
}
