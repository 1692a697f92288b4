package cmd

import (
	"AutomobileDashboard/src/config"
	"AutomobileDashboard/src/datasource/file"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// 全局参数
	configDir  string
	configFile string
	chartFile  string
	dataFile   string
	listenAddr string

	// 加载后的配置
	cfg  *config.Config
	ccfg *config.ChartConfig
)

var rootCmd = &cobra.Command{
	Use:           "autodash",
	Short:         "Automobile dataset dashboard",
	Long:          `autodash loads an automobile dataset once, fills missing horsepower values with the column mean and serves an interactive analysis page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 由 main.main() 调用
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func init() {
	// 在 init 中赋值以避免 rootCmd 与 loadConfig 之间的初始化循环
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&configDir, "config-dir", "./config", "配置文件目录")
	f.StringVar(&configFile, "config", "config.json", "应用配置文件名")
	f.StringVar(&chartFile, "chart-config", "chartconfig.json", "图表配置文件名")
	f.StringVar(&dataFile, "data", "", "数据集文件(覆盖配置)")
	f.StringVar(&listenAddr, "listen", "", "HTTP监听地址(覆盖配置)")
}

// loadConfig 读取配置文件并应用命令行覆盖
// 未显式指定且不存在的配置文件使用默认值
func loadConfig() error {
	c, cc, err := config.LoadConfig(configDir, configFile, chartFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || rootCmd.PersistentFlags().Changed("config") {
			return err
		}
		c, cc = config.Default()
	}
	cfg, ccfg = c, cc

	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}
	return nil
}

// loadOptions 数据集加载参数
func loadOptions(c *config.Config) file.LoadOptions {
	return file.LoadOptions{
		Encoding:  c.Encoding,
		SheetName: c.SheetName,
		HeaderRow: c.HeaderRow,
	}
}
