package entity

import "time"

// Warehouse representa una sucursal/bodega del tenant. Nombre único por tenant.
// En planes de una sola sucursal se espera exactamente una con IsPrimary=true.
type Warehouse struct {
	ID        string
	TenantID  string
	Name      string
	Address   string
	IsPrimary bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location representa una ubicación física dentro de una sucursal (estante, cámara,
// mesón…). Es la granularidad mínima de stock: los balances viven por ubicación.
type Location struct {
	ID          string
	WarehouseID string
	Name        string // único por sucursal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
