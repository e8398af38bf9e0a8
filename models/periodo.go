package models

import (
	"context"
	"errors"
	"time"

	"github.com/eplcas/cas_backend/config"
	"gorm.io/gorm"
)

// PeriodoCas is a named reporting date interval [FechaInicio, FechaFin].
// Intervals are non-overlapping by convention, not enforced.
type PeriodoCas struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Nombre      string    `gorm:"size:100;not null" json:"nombre"`
	FechaInicio time.Time `gorm:"type:date;index;not null" json:"fecha_inicio"`
	FechaFin    time.Time `gorm:"type:date;index;not null" json:"fecha_fin"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PeriodoCas) TableName() string { return "periodos_cas" }

// FindPeriodoForDate resolves a submission date to its containing period.
// Returns nil (no error) when no period contains the date.
func FindPeriodoForDate(ctx context.Context, fecha time.Time) (*PeriodoCas, error) {
	db := config.GetDB()
	var periodo PeriodoCas
	err := db.WithContext(ctx).
		Where("?::date BETWEEN fecha_inicio AND fecha_fin", fecha.Format("2006-01-02")).
		Limit(1).
		Take(&periodo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &periodo, nil
}
