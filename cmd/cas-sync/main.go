package main

import (
	"context"
	"flag"
	"os"

	"github.com/eplcas/cas_backend/config"
	"github.com/eplcas/cas_backend/zenputsync"
	"github.com/sirupsen/logrus"
)

// cas-sync runs one full synchronization across both supervision kinds.
// Cron on Railway invokes it daily; --fix-seguridad runs the one-shot score
// backfill instead.
func main() {
	fixSeguridad := flag.Bool("fix-seguridad", false, "backfill safety scores stored as zero or missing, then exit")
	flag.Parse()

	logger := config.GetLogger()
	config.ConnectDatabaseWithRetry()

	db := config.GetDB()
	if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()

	if *fixSeguridad {
		actualizados, err := zenputsync.FixSeguridadCalificaciones(ctx)
		if err != nil {
			config.LogError(logger, "main", "main", "fix seguridad calificaciones", nil, err)
			os.Exit(1)
		}
		logger.WithFields(logrus.Fields{"actualizados": actualizados}).Info("fix-seguridad completed")
		return
	}

	results, err := zenputsync.RunSync(ctx)
	if err != nil {
		// A failed kind must be visible to the scheduler, not swallowed.
		config.LogError(logger, "main", "main", "run sync", nil, err)
		os.Exit(1)
	}

	for _, res := range results {
		logger.WithFields(logrus.Fields{
			"kind":   res.Kind,
			"nuevos": res.Nuevos,
			"total":  res.Total,
		}).Info("sync completed")
	}
}
