package zenputsync

import (
	"context"

	"github.com/eplcas/cas_backend/config"
	"github.com/eplcas/cas_backend/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// FixSeguridadCalificaciones re-pulls the full safety history from Zenput and
// backfills overall scores stored as zero or missing. One-shot recovery tool
// for a historical extraction defect: it ignores checkpoints, only writes
// positive upstream scores, and never touches KPI rows.
func FixSeguridadCalificaciones(ctx context.Context) (int, error) {
	client, err := newZenputClient()
	if err != nil {
		return 0, err
	}
	logger := config.GetLogger()

	formID := formTemplateIDFromEnv("ZENPUT_FORM_SEGURIDAD", defaultFormSeguridad)
	submissions := client.FetchSubmissions(ctx, formID, nil)
	logger.WithFields(logrus.Fields{"total": len(submissions)}).Info("fetched safety submissions for repair")

	calificaciones := map[string]decimal.Decimal{}
	for _, sub := range submissions {
		submissionId := sub.SubmissionId()
		if submissionId == "" {
			continue
		}
		calif := ExtractCalificacionGeneral(sub.Answers)
		if calif.Valid && calif.Decimal.IsPositive() {
			calificaciones[submissionId] = calif.Decimal
		}
	}
	logger.WithFields(logrus.Fields{"con_calificacion": len(calificaciones)}).Info("submissions with a valid score")

	db := config.GetDB()
	var registros []models.SupervisionSeguridad
	if err := db.WithContext(ctx).
		Where("calificacion_general IS NULL OR calificacion_general = 0").
		Find(&registros).Error; err != nil {
		return 0, err
	}
	logger.WithFields(logrus.Fields{"pendientes": len(registros)}).Info("stored rows with zero or missing score")

	actualizados := 0
	for _, reg := range registros {
		calif, ok := calificaciones[reg.ZenputSubmissionId]
		if !ok {
			continue
		}
		err := db.WithContext(ctx).Model(&models.SupervisionSeguridad{}).
			Where("id = ?", reg.ID).
			Update("calificacion_general", decimal.NullDecimal{Decimal: calif, Valid: true}).Error
		if err != nil {
			config.LogError(logger, "zenputsync", "FixSeguridadCalificaciones", "update calificacion",
				reg.ZenputSubmissionId, err)
			continue
		}
		actualizados++
	}

	logger.WithFields(logrus.Fields{
		"actualizados": actualizados,
		"pendientes":   len(registros),
	}).Info("seguridad calificaciones backfilled")
	return actualizados, nil
}
