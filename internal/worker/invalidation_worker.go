package worker

import (
	"github.com/evaluaasi/support-gateway/internal/service"
)

// StartInvalidationWorker registers the cache invalidation handlers.
func StartInvalidationWorker(invalidation *service.InvalidationService) {
	if invalidation == nil {
		return
	}
	invalidation.RegisterHandlers()
}
