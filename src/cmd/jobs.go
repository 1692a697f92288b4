package cmd

import (
	"AutomobileDashboard/src/config"
	"AutomobileDashboard/src/dashboard"
	"AutomobileDashboard/src/datasource/email"
	"AutomobileDashboard/src/processor"
	"AutomobileDashboard/src/storage"
	"AutomobileDashboard/src/utils"
	"fmt"
	"path/filepath"
	"time"

	"github.com/robfig/cron"
)

// everySpec 把配置中的间隔转为 cron 表达式，例如 "@every 5m0s"
func everySpec(d config.Duration) string {
	return fmt.Sprintf("@every %s", time.Duration(d).String())
}

// addJobs 注册日志轮转、邮箱检查和汇总快照三个定时任务
func addJobs(c *cron.Cron, store *dashboard.Store, logger *storage.Logger) error {
	if err := c.AddFunc(everySpec(cfg.LogCheckInterval), func() {
		rotated, err := logger.CheckRotate(cfg)
		if err != nil {
			logger.Error("日志轮转失败: " + err.Error())
		} else if rotated {
			logger.Info("日志文件已轮转")
		}
	}); err != nil {
		return err
	}

	if cfg.MailEnabled() {
		client := email.NewEmailClient(cfg.Email.Server, cfg.Email.Username, cfg.Email.Password)
		handler := email.NewDatasetAttachmentHandler(cfg.Email.TargetSubject, cfg.DataDir, filepath.Base(cfg.DataFile))
		spec := everySpec(cfg.Email.CheckInterval)
		if err := c.AddFunc(spec, func() {
			logger.Info(fmt.Sprintf("开始定时检查(间隔: %v)...", spec))
			checkMailbox(client, handler, store, logger)
		}); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("邮件监控已启动(检查间隔: %v)", spec))
	}

	if cfg.SnapshotInterval > 0 {
		if err := c.AddFunc(everySpec(cfg.SnapshotInterval), func() {
			if err := writeSnapshot(store.Get(), cfg.SnapshotFile); err != nil {
				logger.Error("生成汇总快照失败: " + err.Error())
				return
			}
			logger.Debug("汇总快照已写入: " + cfg.SnapshotFile)
		}); err != nil {
			return err
		}
	}
	return nil
}

// checkMailbox 下载最新的数据附件；未开启文件监控且附件覆盖了数据文件时直接重新加载
func checkMailbox(svc email.MailService, handler *email.DatasetAttachmentHandler, store *dashboard.Store, logger *storage.Logger) {
	t1 := time.Now()
	newEmail, err := email.CheckAndProcessEmails(svc, handler.TargetSubject, logger)
	if err != nil {
		logger.Error("检查处理邮件失败: " + err.Error())
		return
	}
	if newEmail == nil {
		return
	}

	path, err := handler.Handle(newEmail, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("处理邮件失败(UID:%d): %v", newEmail.UID, err))
		return
	}
	if path != "" && !cfg.WatchData && filepath.Clean(path) == filepath.Clean(store.Path()) {
		reloadStore(store, logger)
	}
	logger.Info(fmt.Sprintf("邮件处理时间：%v", time.Since(t1)))
}

// writeSnapshot 把当前数据集的描述统计写入 xlsx
func writeSnapshot(ds *processor.Dataset, path string) error {
	if ds == nil {
		return fmt.Errorf("数据集尚未加载")
	}
	return utils.SaveToExcel(processor.SummaryFrame(ds.Describe()), path, "summary")
}
