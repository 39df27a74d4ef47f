package ports

import (
	"context"
	"time"

	"github.com/roslog/rerunros/internal/domain"
)

// Sink delivers converted records to the logging backend.
//
// Log is the only operation the core assumes: it either succeeds or reports
// a delivery failure for that one record. The core never retries or buffers;
// a failed delivery is surfaced as a per-message event and dropped.
//
// Implementations must either be safe for concurrent use or be driven
// through a single logical writer; the bridge serializes dispatch per
// transport connection but different connections may dispatch concurrently.
type Sink interface {
	// Log writes one record under the given entity path.
	Log(ctx context.Context, entityPath string, stamp time.Time, entity domain.Entity) error
}
