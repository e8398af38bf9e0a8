package models

import (
	"context"
	"errors"
	"time"

	"github.com/eplcas/cas_backend/config"
	"gorm.io/gorm"
)

// Sucursal is a branch restaurant. Rows are provisioned out of band;
// the sync engine only reads them to resolve Zenput locations.
type Sucursal struct {
	ID               int       `gorm:"primary_key" json:"id"`
	ZenputLocationId string    `gorm:"uniqueIndex;size:64;not null" json:"zenput_location_id"`
	Nombre           string    `gorm:"index;size:150;not null" json:"nombre"`
	GrupoOperativo   string    `gorm:"index;size:100" json:"grupo_operativo"`
	IsActive         *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sucursal) TableName() string { return "sucursales" }

// GetSucursalByZenputLocation returns nil (no error) when the location is unknown.
func GetSucursalByZenputLocation(ctx context.Context, zenputLocationId string) (*Sucursal, error) {
	db := config.GetDB()
	var sucursal Sucursal
	err := db.WithContext(ctx).
		Where("zenput_location_id = ?", zenputLocationId).
		Take(&sucursal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sucursal, nil
}
