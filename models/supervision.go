package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupervisionOperativa is one operational inspection form instance.
// ZenputSubmissionId is the idempotency key: a submission is inserted at most once
// and never updated afterwards.
type SupervisionOperativa struct {
	ID                  int                 `gorm:"primary_key" json:"id"`
	ZenputSubmissionId  string              `gorm:"uniqueIndex;size:64;not null" json:"zenput_submission_id"`
	SucursalId          *int                `gorm:"index" json:"sucursal_id"`
	PeriodoId           *int                `gorm:"index" json:"periodo_id"`
	Supervisor          string              `gorm:"index;size:150" json:"supervisor"`
	FechaSupervision    time.Time           `gorm:"index;not null" json:"fecha_supervision"`
	CalificacionGeneral decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"calificacion_general"`
	LatEntrega          *float64            `json:"lat_entrega"`
	LonEntrega          *float64            `json:"lon_entrega"`
	CreatedAt           time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (SupervisionOperativa) TableName() string { return "supervisiones_operativas" }

// SupervisionSeguridad is one safety inspection form instance.
// The safety form does not capture delivery coordinates.
type SupervisionSeguridad struct {
	ID                  int                 `gorm:"primary_key" json:"id"`
	ZenputSubmissionId  string              `gorm:"uniqueIndex;size:64;not null" json:"zenput_submission_id"`
	SucursalId          *int                `gorm:"index" json:"sucursal_id"`
	PeriodoId           *int                `gorm:"index" json:"periodo_id"`
	Supervisor          string              `gorm:"index;size:150" json:"supervisor"`
	FechaSupervision    time.Time           `gorm:"index;not null" json:"fecha_supervision"`
	CalificacionGeneral decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"calificacion_general"`
	CreatedAt           time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (SupervisionSeguridad) TableName() string { return "supervisiones_seguridad" }

// SupervisionArea is one area sub-score of an operational supervision.
// Rows are created alongside the parent and never updated.
type SupervisionArea struct {
	ID            int             `gorm:"primary_key" json:"id"`
	SupervisionId int             `gorm:"index;not null" json:"supervision_id"`
	AreaId        int             `gorm:"index;not null" json:"area_id"`
	Porcentaje    decimal.Decimal `gorm:"type:numeric(6,2);not null" json:"porcentaje"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (SupervisionArea) TableName() string { return "supervision_areas" }

// SeguridadKpi is one KPI sub-score of a safety supervision.
type SeguridadKpi struct {
	ID            int             `gorm:"primary_key" json:"id"`
	SupervisionId int             `gorm:"index;not null" json:"supervision_id"`
	KpiId         int             `gorm:"index;not null" json:"kpi_id"`
	Porcentaje    decimal.Decimal `gorm:"type:numeric(6,2);not null" json:"porcentaje"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (SeguridadKpi) TableName() string { return "seguridad_kpis" }
