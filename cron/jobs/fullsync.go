package jobs

import (
	"saebridge/config"
	"saebridge/cron"
	"saebridge/service/legacy"
	migrateService "saebridge/service/migrate"
)

func init() {
	cron.Register("fullsync", "0 2 * * *", FullSyncJob)
	cron.Register("audit", "0 6 * * *", AuditJob)
}

// FullSyncJob runs the whole migration pipeline. Scheduled nightly so the
// target trails the legacy ERP by at most a day while both run side by side.
func FullSyncJob(args ...string) {
	log := config.GetLogger()
	run, err := jobRun()
	if err != nil {
		log.Error("fullsync: ", err)
		return
	}
	results, err := migrateService.RunFull(run)
	if err != nil {
		log.Error("fullsync: ", err)
	}
	for _, res := range results {
		log.Infof("fullsync %s: %d inserted, %d updated, %d skipped",
			res.Entity, res.Inserted, res.Updated, res.Skipped)
	}
}

// AuditJob reconciles after the nightly sync and logs mismatches.
func AuditJob(args ...string) {
	log := config.GetLogger()
	run, err := jobRun()
	if err != nil {
		log.Error("audit: ", err)
		return
	}
	report, err := migrateService.RunAudit(run)
	if err != nil {
		log.Error("audit: ", err)
		return
	}
	for _, c := range report.Mismatches() {
		log.Warnf("audit %s: legacy=%s target=%s", c.Metric, c.Legacy, c.Target)
	}
	if report.OK() {
		log.Info("audit: all metrics match")
	}
}

func jobRun() (*migrateService.Run, error) {
	params, err := config.LoadRunParams()
	if err != nil {
		return nil, err
	}
	legacyDB, err := config.NewLegacyDB()
	if err != nil {
		return nil, err
	}
	target, err := config.NewDB()
	if err != nil {
		return nil, err
	}
	return migrateService.NewRun(params, legacy.NewSQLSource(legacyDB), target, config.GetLogger()), nil
}
