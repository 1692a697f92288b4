package cmd

import (
	"AutomobileDashboard/src/dashboard"
	"AutomobileDashboard/src/datasource/file"
	"AutomobileDashboard/src/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the dataset and serve the dashboard over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	logger.SetEcho(os.Stderr)
	defer logger.Close()

	// 加载数据集并填充缺失值，只执行一次；失败则退出
	store := dashboard.NewStore(cfg.DataFile, loadOptions(cfg))
	ds, err := store.Load()
	if err != nil {
		logger.Fatal("加载数据集失败: " + err.Error())
		return err
	}
	logDataset(logger, "数据集加载完成", ds.Nrow(), ds.Imputation().Filled, ds.Imputation().Value)

	if err := writePidFile(cfg.PidFile); err != nil {
		logger.Warning("写入进程号文件失败: " + err.Error())
	} else {
		defer os.Remove(cfg.PidFile)
	}

	// 定时任务
	c := cron.New()
	if err := addJobs(c, store, logger); err != nil {
		logger.Error("创建定时任务失败: " + err.Error())
		return err
	}
	c.Start()
	defer c.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 数据文件变化后重新加载
	if cfg.WatchData {
		monitor, err := file.NewFileMonitor(cfg.DataFile)
		if err != nil {
			logger.Error("启动文件监控失败: " + err.Error())
		} else {
			defer monitor.Close()
			go func() {
				err := monitor.Watch(ctx, func(string) { reloadStore(store, logger) })
				if err != nil {
					logger.Error("文件监控错误: " + err.Error())
				}
			}()
		}
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           dashboard.NewServer(store, ccfg, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info(fmt.Sprintf("仪表盘已启动: %s，按Ctrl+C退出", cfg.Listen))

	return waitForShutdown(srv, errCh, store, logger)
}

// waitForShutdown SIGHUP 重新打开日志并重新加载数据集，SIGINT/SIGTERM 退出
func waitForShutdown(srv *http.Server, errCh <-chan error, store *dashboard.Store, logger *storage.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			logger.Error("HTTP服务异常退出: " + err.Error())
			return err
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				if err := logger.Reopen(""); err != nil {
					fmt.Fprintln(os.Stderr, "重新打开日志失败:", err)
				}
				logger.Info("Received signal: " + sig.String() + ", reloading...")
				reloadStore(store, logger)
				continue
			}

			logger.Info("Received signal: " + sig.String() + ", shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			err := srv.Shutdown(ctx)
			cancel()
			return err
		}
	}
}

// reloadStore 重新加载数据集，失败时继续使用原数据集
func reloadStore(store *dashboard.Store, logger *storage.Logger) {
	ds, err := store.Load()
	if err != nil {
		logger.Error("重新加载数据集失败，继续使用原数据: " + err.Error())
		return
	}
	logDataset(logger, "数据集已重新加载", ds.Nrow(), ds.Imputation().Filled, ds.Imputation().Value)
}

func logDataset(logger *storage.Logger, prefix string, rows, filled int, value float64) {
	logger.Info(fmt.Sprintf("%s: %s，%d 行，horsepower 缺失值 %d 个，填充值 %.3f",
		prefix, cfg.DataFile, rows, filled, value))
}

// writePidFile 记录当前进程号，供 reload 命令使用
func writePidFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644)
}

// readPidFile 读取进程号文件
func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("读取进程号文件失败: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("进程号文件 %s 内容无效", path)
	}
	return pid, nil
}
