package migrate

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"saebridge/config"
	"saebridge/service/legacy"
)

// Run carries all run-scoped state of one migration: the externally supplied
// parameters, the identity resolver, the dedup filter and the connections.
// It is created at run start and discarded at run end — never a process-wide
// singleton, so parallel test runs don't bleed into each other.
type Run struct {
	Params   config.RunParams
	Source   legacy.Source
	Target   *gorm.DB
	Log      *logrus.Logger
	Resolver *Resolver
	Dedup    *DedupFilter
}

// NewRun wires a fresh run context. The logger falls back to the shared one
// when nil.
func NewRun(params config.RunParams, src legacy.Source, target *gorm.DB, log *logrus.Logger) *Run {
	if log == nil {
		log = config.GetLogger()
	}
	return &Run{
		Params:   params,
		Source:   src,
		Target:   target,
		Log:      log,
		Resolver: NewResolver(),
		Dedup:    NewDedupFilter(),
	}
}

// UserID returns the default owner id as a nullable column value.
func (r *Run) UserID() *string {
	if r.Params.DefaultUserID == "" {
		return nil
	}
	id := r.Params.DefaultUserID
	return &id
}
