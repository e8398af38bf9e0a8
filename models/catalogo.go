package models

import (
	"context"
	"errors"
	"time"

	"github.com/eplcas/cas_backend/config"
	"gorm.io/gorm"
)

// Static reference data for the operational areas and safety KPIs.
// Read-only to the sync engine.

type CatalogoArea struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Codigo    string    `gorm:"uniqueIndex;size:64;not null" json:"codigo"`
	Nombre    string    `gorm:"size:150;not null" json:"nombre"`
	Orden     int       `gorm:"index" json:"orden"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CatalogoArea) TableName() string { return "catalogo_areas" }

type CatalogoKpiSeguridad struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Codigo    string    `gorm:"uniqueIndex;size:64;not null" json:"codigo"`
	Nombre    string    `gorm:"size:150;not null" json:"nombre"`
	Orden     int       `gorm:"index" json:"orden"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CatalogoKpiSeguridad) TableName() string { return "catalogo_kpis_seguridad" }

// GetAreaIdByCodigo returns 0 (no error) when the code is absent from the catalog.
func GetAreaIdByCodigo(ctx context.Context, db *gorm.DB, codigo string) (int, error) {
	if db == nil {
		db = config.GetDB()
	}
	var area CatalogoArea
	err := db.WithContext(ctx).Where("codigo = ?", codigo).Take(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return area.ID, nil
}

// GetKpiIdByCodigo returns 0 (no error) when the code is absent from the catalog.
func GetKpiIdByCodigo(ctx context.Context, db *gorm.DB, codigo string) (int, error) {
	if db == nil {
		db = config.GetDB()
	}
	var kpi CatalogoKpiSeguridad
	err := db.WithContext(ctx).Where("codigo = ?", codigo).Take(&kpi).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return kpi.ID, nil
}
