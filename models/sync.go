package models

import (
	"context"
	"errors"
	"time"

	"github.com/eplcas/cas_backend/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SyncEstadoRunning = "running"
	SyncEstadoSuccess = "success"
	SyncEstadoError   = "error"
)

// SyncCheckpoint holds, per form table, the timestamp of the last successful sync.
// It is the lower bound for the next fetch.
type SyncCheckpoint struct {
	ID          int        `gorm:"primary_key" json:"id"`
	Formulario  string     `gorm:"uniqueIndex;size:64;not null" json:"formulario"`
	UltimaFecha *time.Time `json:"ultima_fecha"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SyncCheckpoint) TableName() string { return "sync_checkpoints" }

// SyncLog is the append-only audit trail: one row per sync invocation per kind.
type SyncLog struct {
	ID              int        `gorm:"primary_key" json:"id"`
	Workflow        string     `gorm:"index;size:64;not null" json:"workflow"`
	Inicio          time.Time  `gorm:"not null" json:"inicio"`
	Fin             *time.Time `json:"fin"`
	Estado          string     `gorm:"size:20;not null" json:"estado"`
	RegistrosNuevos int        `json:"registros_nuevos"`
}

func (SyncLog) TableName() string { return "sync_log" }

// GetCheckpoint returns nil on the first-ever run, meaning "fetch everything".
func GetCheckpoint(ctx context.Context, formulario string) (*time.Time, error) {
	db := config.GetDB()
	var checkpoint SyncCheckpoint
	err := db.WithContext(ctx).Where("formulario = ?", formulario).Take(&checkpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return checkpoint.UltimaFecha, nil
}

// AdvanceCheckpoint sets the checkpoint to the given wall-clock time, creating
// the row on the first run.
func AdvanceCheckpoint(ctx context.Context, formulario string, ultimaFecha time.Time) error {
	db := config.GetDB()
	checkpoint := SyncCheckpoint{
		Formulario:  formulario,
		UltimaFecha: &ultimaFecha,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "formulario"}},
			DoUpdates: clause.AssignmentColumns([]string{"ultima_fecha", "updated_at"}),
		}).
		Create(&checkpoint).Error
}

func CreateSyncLog(ctx context.Context, workflow string) (*SyncLog, error) {
	db := config.GetDB()
	logRow := SyncLog{
		Workflow: workflow,
		Inicio:   time.Now(),
		Estado:   SyncEstadoRunning,
	}
	if err := db.WithContext(ctx).Create(&logRow).Error; err != nil {
		return nil, err
	}
	return &logRow, nil
}

func MarkSyncLogSuccess(ctx context.Context, id int, registrosNuevos int) error {
	db := config.GetDB()
	now := time.Now()
	return db.WithContext(ctx).Model(&SyncLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"fin":              now,
			"estado":           SyncEstadoSuccess,
			"registros_nuevos": registrosNuevos,
		}).Error
}

func MarkSyncLogError(ctx context.Context, id int) error {
	db := config.GetDB()
	now := time.Now()
	return db.WithContext(ctx).Model(&SyncLog{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"fin":    now,
			"estado": SyncEstadoError,
		}).Error
}

// GetCheckpoints returns every per-kind checkpoint row.
func GetCheckpoints(ctx context.Context) ([]*SyncCheckpoint, error) {
	db := config.GetDB()
	var results []*SyncCheckpoint
	err := db.WithContext(ctx).Order("formulario").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetRecentSyncLogs returns the latest run-log rows, newest first.
func GetRecentSyncLogs(ctx context.Context, limit int) ([]*SyncLog, error) {
	db := config.GetDB()
	if limit <= 0 {
		limit = 50
	}
	var results []*SyncLog
	err := db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
