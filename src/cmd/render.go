package cmd

import (
	"AutomobileDashboard/src/dashboard"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderMPGLo    float64
	renderMPGHi    float64
	renderCyl      int
	renderFeatures []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard once to a static HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderStatic(renderOut, controlQuery(cmd))
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "out", "o", "dashboard.html", "输出文件")
	f.Float64Var(&renderMPGLo, "mpg-lo", 0, "mpg 区间下限(默认为最小值)")
	f.Float64Var(&renderMPGHi, "mpg-hi", 0, "mpg 区间上限(默认为最大值)")
	f.IntVar(&renderCyl, "cyl", 0, "散点图的气缸数(默认为最小值)")
	f.StringSliceVar(&renderFeatures, "feature", nil, "散点矩阵特征，可重复")
	rootCmd.AddCommand(renderCmd)
}

// controlQuery 把显式给出的命令行参数转为与页面相同的查询参数
func controlQuery(cmd *cobra.Command) url.Values {
	q := url.Values{}
	f := cmd.Flags()
	if f.Changed("mpg-lo") {
		q.Set(dashboard.ParamMPGLo, fmt.Sprint(renderMPGLo))
	}
	if f.Changed("mpg-hi") {
		q.Set(dashboard.ParamMPGHi, fmt.Sprint(renderMPGHi))
	}
	if f.Changed("cyl") {
		q.Set(dashboard.ParamCyl, fmt.Sprint(renderCyl))
	}
	if f.Changed("feature") {
		q.Set(dashboard.ParamFeatures, "1")
		for _, name := range renderFeatures {
			if name != "" {
				q.Add(dashboard.ParamFeature, name)
			}
		}
	}
	return q
}

// renderStatic 加载数据集并渲染一次页面
func renderStatic(out string, q url.Values) error {
	store := dashboard.NewStore(cfg.DataFile, loadOptions(cfg))
	ds, err := store.Load()
	if err != nil {
		return err
	}

	page, err := dashboard.Render(ds, ccfg, dashboard.ParseControls(q, ds, ccfg))
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	if err := dashboard.WritePage(f, page); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("页面已写入: %s\n", out)
	return nil
}
