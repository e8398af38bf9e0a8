package zenputsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eplcas/cas_backend/config"
	"github.com/eplcas/cas_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type recordStatus int

const (
	recordInserted recordStatus = iota
	recordSkipped
	recordFailed
)

// recordOutcome threads each submission's result through the batch fold.
// A failed record is logged with its submission id and never aborts the batch.
type recordOutcome struct {
	status recordStatus
	reason string
	err    error
}

func inserted() recordOutcome             { return recordOutcome{status: recordInserted} }
func skipped(reason string) recordOutcome { return recordOutcome{status: recordSkipped, reason: reason} }
func failed(err error) recordOutcome      { return recordOutcome{status: recordFailed, err: err} }

const (
	skipMissingId       = "missing_submission_id"
	skipDuplicate       = "duplicate_submission"
	skipNoLocation      = "no_location"
	skipUnknownLocation = "unknown_location"
	skipBadDate         = "unparseable_date"
)

// kindConfig is the per-kind dispatch entry, resolved once per run.
type kindConfig struct {
	Kind           FormKind
	FormTemplateID int
	Tabla          string
	syncOne        func(ctx context.Context, sub Submission) recordOutcome
}

func kindConfigs() []kindConfig {
	return []kindConfig{
		{
			Kind:           KindOperativas,
			FormTemplateID: formTemplateIDFromEnv("ZENPUT_FORM_OPERATIVAS", defaultFormOperativas),
			Tabla:          models.SupervisionOperativa{}.TableName(),
			syncOne:        syncOperativa,
		},
		{
			Kind:           KindSeguridad,
			FormTemplateID: formTemplateIDFromEnv("ZENPUT_FORM_SEGURIDAD", defaultFormSeguridad),
			Tabla:          models.SupervisionSeguridad{}.TableName(),
			syncOne:        syncSeguridad,
		},
	}
}

func formTemplateIDFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

type RunResult struct {
	Kind   FormKind
	Total  int
	Nuevos int
	Err    error
}

// RunSync executes one full sync across both kinds, sequentially and
// independently: a failed kind is surfaced to the caller but does not block
// the other kind from running.
func RunSync(ctx context.Context) ([]RunResult, error) {
	client, err := newZenputClient()
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger()

	var results []RunResult
	var runErr error
	for _, cfg := range kindConfigs() {
		res := runKind(ctx, logger, client, cfg)
		results = append(results, res)
		if res.Err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("%s: %w", cfg.Kind, res.Err))
		}
	}

	logRunSummary(ctx, logger, results)
	return results, runErr
}

func runKind(ctx context.Context, logger *logrus.Logger, client *zenputClient, cfg kindConfig) RunResult {
	res := RunResult{Kind: cfg.Kind}

	after, err := models.GetCheckpoint(ctx, cfg.Tabla)
	if err != nil {
		res.Err = err
		return res
	}
	if after != nil {
		logger.WithFields(logrus.Fields{"kind": cfg.Kind, "checkpoint": after}).Info("incremental sync from checkpoint")
	} else {
		logger.WithFields(logrus.Fields{"kind": cfg.Kind}).Info("first sync, fetching full history")
	}

	logRow, err := models.CreateSyncLog(ctx, "etl_"+string(cfg.Kind))
	if err != nil {
		res.Err = err
		return res
	}

	submissions := client.FetchSubmissions(ctx, cfg.FormTemplateID, after)
	res.Total = len(submissions)

	nuevos, err := syncSubmissions(ctx, logger, cfg, submissions)
	res.Nuevos = nuevos
	if err == nil {
		// Advance to wall-clock now, not to the max observed submission
		// timestamp: records submitted late relative to the fetch are
		// re-covered next run, and the duplicate guard absorbs the overlap.
		err = models.AdvanceCheckpoint(ctx, cfg.Tabla, time.Now())
	}
	if err != nil {
		res.Err = err
		if markErr := models.MarkSyncLogError(ctx, logRow.ID); markErr != nil {
			config.LogError(logger, "zenputsync", "runKind", "mark sync log error", logRow.ID, markErr)
		}
		return res
	}

	if err := models.MarkSyncLogSuccess(ctx, logRow.ID, nuevos); err != nil {
		res.Err = err
		return res
	}

	logger.WithFields(logrus.Fields{
		"kind":   cfg.Kind,
		"total":  res.Total,
		"nuevos": nuevos,
	}).Info("sync kind completed")
	return res
}

func syncSubmissions(ctx context.Context, logger *logrus.Logger, cfg kindConfig, submissions []Submission) (int, error) {
	nuevos := 0
	skips := map[string]int{}

	for _, sub := range submissions {
		outcome := cfg.syncOne(ctx, sub)
		switch outcome.status {
		case recordInserted:
			nuevos++
		case recordSkipped:
			skips[outcome.reason]++
		case recordFailed:
			config.LogError(logger, "zenputsync", "syncSubmissions", "insert submission",
				map[string]any{"kind": cfg.Kind, "submission_id": sub.SubmissionId()}, outcome.err)
		}
		if err := ctx.Err(); err != nil {
			return nuevos, err
		}
	}

	if len(skips) > 0 {
		logger.WithFields(logrus.Fields{"kind": cfg.Kind, "skipped": skips}).Info("skipped submissions")
	}
	return nuevos, nil
}

func syncOperativa(ctx context.Context, sub Submission) recordOutcome {
	submissionId := sub.SubmissionId()
	if submissionId == "" {
		return skipped(skipMissingId)
	}

	exists, err := submissionExists[models.SupervisionOperativa](ctx, submissionId)
	if err != nil {
		return failed(err)
	}
	if exists {
		return skipped(skipDuplicate)
	}

	locationId := sub.Metadata.LocationId()
	if locationId == "" {
		return skipped(skipNoLocation)
	}
	sucursal, err := models.GetSucursalByZenputLocation(ctx, locationId)
	if err != nil {
		return failed(err)
	}
	if sucursal == nil {
		return skipped(skipUnknownLocation)
	}

	fecha, ok := parseSubmissionTime(sub.Metadata.DateSubmitted)
	if !ok {
		return skipped(skipBadDate)
	}

	periodoId, err := resolvePeriodoId(ctx, fecha)
	if err != nil {
		return failed(err)
	}

	calificacion := ExtractCalificacionGeneral(sub.Answers)
	areas := ExtractAreas(sub.Answers)

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent := models.SupervisionOperativa{
			ZenputSubmissionId:  submissionId,
			SucursalId:          &sucursal.ID,
			PeriodoId:           periodoId,
			Supervisor:          sub.Metadata.CreatedBy.DisplayName,
			FechaSupervision:    fecha,
			CalificacionGeneral: calificacion,
			LatEntrega:          sub.Metadata.Lat,
			LonEntrega:          sub.Metadata.Lon,
		}
		if err := tx.Create(&parent).Error; err != nil {
			return err
		}
		for codigo, porcentaje := range areas {
			areaId, err := models.GetAreaIdByCodigo(ctx, tx, codigo)
			if err != nil {
				return err
			}
			if areaId == 0 {
				// code absent from catalog
				continue
			}
			row := models.SupervisionArea{SupervisionId: parent.ID, AreaId: areaId, Porcentaje: porcentaje}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return failed(err)
	}
	return inserted()
}

func syncSeguridad(ctx context.Context, sub Submission) recordOutcome {
	submissionId := sub.SubmissionId()
	if submissionId == "" {
		return skipped(skipMissingId)
	}

	exists, err := submissionExists[models.SupervisionSeguridad](ctx, submissionId)
	if err != nil {
		return failed(err)
	}
	if exists {
		return skipped(skipDuplicate)
	}

	locationId := sub.Metadata.LocationId()
	if locationId == "" {
		locationId, err = borrowOperativaLocation(ctx, sub)
		if err != nil {
			return failed(err)
		}
	}
	if locationId == "" {
		return skipped(skipNoLocation)
	}
	sucursal, err := models.GetSucursalByZenputLocation(ctx, locationId)
	if err != nil {
		return failed(err)
	}
	if sucursal == nil {
		return skipped(skipUnknownLocation)
	}

	fecha, ok := parseSubmissionTime(sub.Metadata.DateSubmitted)
	if !ok {
		return skipped(skipBadDate)
	}

	periodoId, err := resolvePeriodoId(ctx, fecha)
	if err != nil {
		return failed(err)
	}

	calificacion := ExtractCalificacionGeneral(sub.Answers)
	kpis := ExtractKpis(sub.Answers)

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent := models.SupervisionSeguridad{
			ZenputSubmissionId:  submissionId,
			SucursalId:          &sucursal.ID,
			PeriodoId:           periodoId,
			Supervisor:          sub.Metadata.CreatedBy.DisplayName,
			FechaSupervision:    fecha,
			CalificacionGeneral: calificacion,
		}
		if err := tx.Create(&parent).Error; err != nil {
			return err
		}
		for codigo, porcentaje := range kpis {
			kpiId, err := models.GetKpiIdByCodigo(ctx, tx, codigo)
			if err != nil {
				return err
			}
			if kpiId == 0 {
				continue
			}
			row := models.SeguridadKpi{SupervisionId: parent.ID, KpiId: kpiId, Porcentaje: porcentaje}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return failed(err)
	}
	return inserted()
}

// submissionExists is the idempotency guard: a submission id already stored
// for this kind is skipped entirely, no update, no re-derivation.
func submissionExists[T any](ctx context.Context, submissionId string) (bool, error) {
	db := config.GetDB()
	var count int64
	var model T
	err := db.WithContext(ctx).Model(&model).
		Where("zenput_submission_id = ?", submissionId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// borrowOperativaLocation rescues a safety submission that arrived without a
// location: an operational supervision by the same supervisor on the same
// calendar date identifies the branch. Multiple matches take the first.
func borrowOperativaLocation(ctx context.Context, sub Submission) (string, error) {
	fecha, ok := parseSubmissionTime(sub.Metadata.DateSubmitted)
	if !ok {
		return "", nil
	}
	supervisor := strings.TrimSpace(sub.Metadata.CreatedBy.DisplayName)
	if supervisor == "" {
		return "", nil
	}

	db := config.GetDB()
	var locationId string
	err := db.WithContext(ctx).Raw(`
		SELECT s.zenput_location_id
		FROM supervisiones_operativas so
		JOIN sucursales s ON so.sucursal_id = s.id
		WHERE so.fecha_supervision::date = ? AND so.supervisor = ?
		LIMIT 1
	`, fecha.Format("2006-01-02"), supervisor).Scan(&locationId).Error
	if err != nil {
		return "", err
	}
	return locationId, nil
}

func resolvePeriodoId(ctx context.Context, fecha time.Time) (*int, error) {
	periodo, err := models.FindPeriodoForDate(ctx, fecha)
	if err != nil {
		return nil, err
	}
	if periodo == nil {
		// stored with a null period reference, not dropped
		return nil, nil
	}
	return &periodo.ID, nil
}

func logRunSummary(ctx context.Context, logger *logrus.Logger, results []RunResult) {
	db := config.GetDB()
	var totalOperativas, totalAreas, totalSeguridad, totalKpis int64
	db.WithContext(ctx).Model(&models.SupervisionOperativa{}).Count(&totalOperativas)
	db.WithContext(ctx).Model(&models.SupervisionArea{}).Count(&totalAreas)
	db.WithContext(ctx).Model(&models.SupervisionSeguridad{}).Count(&totalSeguridad)
	db.WithContext(ctx).Model(&models.SeguridadKpi{}).Count(&totalKpis)

	logger.WithFields(logrus.Fields{
		"supervisiones_operativas": totalOperativas,
		"supervision_areas":        totalAreas,
		"supervisiones_seguridad":  totalSeguridad,
		"seguridad_kpis":           totalKpis,
	}).Info("database totals")

	for _, res := range results {
		if res.Err != nil {
			logger.WithFields(logrus.Fields{"kind": res.Kind}).Error(res.Err)
			continue
		}
		logger.WithFields(logrus.Fields{
			"kind":   res.Kind,
			"nuevos": res.Nuevos,
			"total":  res.Total,
		}).Info("sync result")
	}
}
