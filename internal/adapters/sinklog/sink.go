// Package sinklog implements ports.Sink by writing records to the
// structured logger. It is the debug surface used by the --dump flag.
package sinklog

import (
	"context"
	"time"

	"github.com/roslog/rerunros/internal/domain"
	"github.com/roslog/rerunros/pkg/log"
)

// Sink logs every record instead of shipping it anywhere.
type Sink struct {
	logger log.Logger
}

// New creates a logging sink.
func New(logger log.Logger) *Sink {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Sink{logger: logger}
}

// Log writes the record at info level. It never fails.
func (s *Sink) Log(_ context.Context, entityPath string, stamp time.Time, entity domain.Entity) error {
	s.logger.Info("record",
		log.String("entity_path", entityPath),
		log.Time("stamp", stamp),
		log.String("kind", entity.Kind()),
		log.Any("data", entity),
	)
	return nil
}
