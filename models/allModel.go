package models

import "github.com/eplcas/cas_backend/config"

// MigrateTable creates the schema for test databases. Production schema is
// provisioned out of band; this never runs in the sync path.
func MigrateTable() {
	db := config.GetDB()
	db.AutoMigrate(
		&Sucursal{},
		&PeriodoCas{},
		&CatalogoArea{},
		&CatalogoKpiSeguridad{},
		&SupervisionOperativa{},
		&SupervisionSeguridad{},
		&SupervisionArea{},
		&SeguridadKpi{},
		&SyncCheckpoint{},
		&SyncLog{},
	)
}
