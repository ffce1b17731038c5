package cron

import (
	"community/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	viewSyncJob       *job.ViewSyncJob
	statsReconcileJob *job.StatsReconcileJob
}

func NewCronManager(viewSyncJob *job.ViewSyncJob, statsReconcileJob *job.StatsReconcileJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		viewSyncJob:       viewSyncJob,
		statsReconcileJob: statsReconcileJob,
	}
}

// RegisterJobs 注册定时任务。浏览数同步每30秒一次，
// 上一轮没刷完时跳过本轮，避免两轮并发写同一批统计行
func (s *Manager) RegisterJobs() error {
	viewSync := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(s.viewSyncJob)
	if _, err := s.engine.AddJob("*/30 * * * * *", viewSync); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.statsReconcileJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待在跑的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
