package repository

import "context"

// Repos agrupa repositorios atados a una misma transacción.
type Repos struct {
	Users         UserRepository
	Suppliers     SupplierRepository
	Equipment     EquipmentRepository
	Contracts     ContractRepository
	Interventions InterventionRepository
	PVs           PVRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
