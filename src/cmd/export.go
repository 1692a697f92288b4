package cmd

import (
	"AutomobileDashboard/src/dashboard"
	"AutomobileDashboard/src/utils"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	exportOut   string
	exportMPGLo float64
	exportMPGHi float64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the cars within an MPG range to an xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if cmd.Flags().Changed("mpg-lo") {
			q.Set(dashboard.ParamMPGLo, fmt.Sprint(exportMPGLo))
		}
		if cmd.Flags().Changed("mpg-hi") {
			q.Set(dashboard.ParamMPGHi, fmt.Sprint(exportMPGHi))
		}
		return exportRange(exportOut, q)
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOut, "out", "o", "cars.xlsx", "输出文件")
	f.Float64Var(&exportMPGLo, "mpg-lo", 0, "mpg 区间下限(默认为最小值)")
	f.Float64Var(&exportMPGHi, "mpg-hi", 0, "mpg 区间上限(默认为最大值)")
	rootCmd.AddCommand(exportCmd)
}

// exportRange 导出 mpg 区间内的数据(已填充缺失值)
func exportRange(out string, q url.Values) error {
	store := dashboard.NewStore(cfg.DataFile, loadOptions(cfg))
	ds, err := store.Load()
	if err != nil {
		return err
	}

	c := dashboard.ParseControls(q, ds, ccfg)
	sub := ds.FilterMPG(c.MPGLo, c.MPGHi)
	if err := utils.SaveToExcel(sub, out, "cars"); err != nil {
		return err
	}
	fmt.Printf("%d 行已导出到: %s\n", sub.Nrow(), out)
	return nil
}
