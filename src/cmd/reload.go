package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Ask a running serve process to reload the dataset and reopen its log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendReload(cfg.PidFile)
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}

// sendReload 向进程号文件中的进程发送 SIGHUP
func sendReload(pidFile string) error {
	pid, err := readPidFile(pidFile)
	if err != nil {
		return err
	}
	if err := syscall.Kill(pid, syscall.SIGHUP); err != nil {
		return fmt.Errorf("发送SIGHUP失败(pid %d): %w", pid, err)
	}
	fmt.Printf("已向进程 %d 发送 SIGHUP\n", pid)
	return nil
}
