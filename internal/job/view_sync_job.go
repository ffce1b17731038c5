package job

import (
	"community/internal/pkg/logger"
	"community/internal/service"
	"context"

	"github.com/google/uuid"
)

// ViewSyncJob 周期性把进程内累积的浏览增量刷进数据库
type ViewSyncJob struct {
	viewCache *service.ViewCountCache
}

func NewViewSyncJob(viewCache *service.ViewCountCache) *ViewSyncJob {
	return &ViewSyncJob{viewCache: viewCache}
}

func (s *ViewSyncJob) Run() {
	traceID := "job-view-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	s.viewCache.Flush(ctx)
}
