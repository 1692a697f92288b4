package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config 结构体定义了应用程序的配置结构
type Config struct {
	DataFile  string `json:"data_file"`  // 数据集文件路径(.csv / .xlsx)
	DataDir   string `json:"data_dir"`   // 数据目录，邮件附件保存位置
	Encoding  string `json:"encoding"`   // 数据文件编码: utf-8 / gbk / gb2312
	SheetName string `json:"sheet_name"` // xlsx数据所在工作表
	HeaderRow int    `json:"header_row"` // xlsx标题行(从0开始)

	Listen    string `json:"listen"`     // HTTP监听地址
	PidFile   string `json:"pid_file"`   // 进程号文件，reload命令使用
	WatchData bool   `json:"watch_data"` // 数据文件变化后自动重新加载

	LogName          string   `json:"log_name"`
	LogMaxSize       string   `json:"log_max_size"` // 例如 "10 * 1024 * 1024"
	LogCheckInterval Duration `json:"log_check_interval"`

	SnapshotFile     string   `json:"snapshot_file"`     // 汇总统计快照(xlsx)
	SnapshotInterval Duration `json:"snapshot_interval"` // 为0时不生成快照

	Email struct {
		Server        string   `json:"server"`         // 邮件服务器地址
		Username      string   `json:"username"`       // 邮箱用户名
		Password      string   `json:"password"`       // 邮箱密码
		TargetSubject string   `json:"target_subject"` // 需要匹配的邮件主题
		CheckInterval Duration `json:"check_interval"` // 检查新邮件的间隔时间
	} `json:"email"`
}

// ChartConfig 页面与图表的展示配置
type ChartConfig struct {
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	PairCellSize  int                 `json:"pair_cell_size"`
	PreviewRows   int                 `json:"preview_rows"`
	HistogramBins int                 `json:"histogram_bins"`
	PairFeatures  []string            `json:"pair_features"` // 散点矩阵可选特征
	PairDefaults  []string            `json:"pair_defaults"` // 散点矩阵默认特征
	Palettes      map[string][]string `json:"palettes"`      // 调色板名称 -> 颜色(hex)
	Title         string              `json:"title"`
}

// 默认值
const (
	DefaultDataFile      = "Automobile.csv"
	DefaultListen        = ":8080"
	DefaultLogName       = "app.log"
	DefaultLogMaxSize    = "10 * 1024 * 1024"
	DefaultPidFile       = "autodash.pid"
	DefaultSnapshotFile  = "summary.xlsx"
	DefaultWidth         = 640
	DefaultHeight        = 420
	DefaultPairCellSize  = 180
	DefaultPreviewRows   = 5
	DefaultHistogramBins = 15
	DefaultTitle         = "Automobile Dataset Analysis"
)

var (
	once              sync.Once
	instance          *Config
	chartInstance     *ChartConfig
	mu                sync.RWMutex
	defaultPairChoice = []string{"mpg", "displacement", "horsepower", "weight", "acceleration"}
	defaultPairPicked = []string{"mpg", "displacement", "horsepower"}
)

// LoadConfig 加载配置(进程内只执行一次)
func LoadConfig(jsonFolder, jsonFile, chartJsonFile string) (*Config, *ChartConfig, error) {
	var err error
	once.Do(func() {
		instance, chartInstance, err = loadConfigs(jsonFolder, jsonFile, chartJsonFile)
	})
	return instance, chartInstance, err
}

func loadConfigs(jsonFolder, jsonFile, chartJsonFile string) (*Config, *ChartConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	chartConfigFile := filepath.Join(jsonFolder, chartJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 图表配置可选，缺失时全部使用默认值
	chartConfigData, err := readFile(chartConfigFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("读取图表配置文件失败: %w", err)
		}
		chartConfigData = []byte("{}")
	}

	cfgChan := make(chan *Config, 1)
	ccfgChan := make(chan *ChartConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseChartConfig(chartConfigData, ccfgChan, errChan)

	cfg, ccfg, err := waitForResults(cfgChan, ccfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	cfg.ApplyDefaults()
	ccfg.ApplyDefaults()
	return cfg, ccfg, nil
}

// Default 返回一份全部为默认值的配置，没有配置文件时使用
func Default() (*Config, *ChartConfig) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	ccfg := &ChartConfig{}
	ccfg.ApplyDefaults()
	return cfg, ccfg
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("解析Config失败: %w", err)
		return
	}
	resultChan <- &cfg
}

func parseChartConfig(data []byte, resultChan chan<- *ChartConfig, errChan chan<- error) {
	var ccfg ChartConfig
	if err := json.Unmarshal(data, &ccfg); err != nil {
		errChan <- fmt.Errorf("解析ChartConfig失败: %w", err)
		return
	}
	resultChan <- &ccfg
}

func waitForResults(
	cfgChan <-chan *Config,
	ccfgChan <-chan *ChartConfig,
	errChan <-chan error,
) (*Config, *ChartConfig, error) {
	var (
		cfg  *Config
		ccfg *ChartConfig
		errs []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-ccfgChan:
			ccfg = d
		case err := <-errChan:
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, nil, combineErrors(errs)
	}

	if cfg == nil || ccfg == nil {
		return nil, nil, fmt.Errorf("部分配置未加载成功")
	}

	return cfg, ccfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "配置加载遇到多个错误:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// ApplyDefaults 为未设置的字段填充默认值
func (c *Config) ApplyDefaults() {
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Dir(c.DataFile)
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.LogName == "" {
		c.LogName = DefaultLogName
	}
	if c.LogMaxSize == "" {
		c.LogMaxSize = DefaultLogMaxSize
	}
	if c.LogCheckInterval == 0 {
		c.LogCheckInterval = Duration(time.Minute)
	}
	if c.PidFile == "" {
		c.PidFile = DefaultPidFile
	}
	if c.SnapshotFile == "" {
		c.SnapshotFile = DefaultSnapshotFile
	}
	if c.Email.CheckInterval == 0 {
		c.Email.CheckInterval = Duration(5 * time.Minute)
	}
}

// MailEnabled 是否配置了邮箱数据源
func (c *Config) MailEnabled() bool {
	return c.Email.Server != "" && c.Email.Username != ""
}

// ApplyDefaults 为未设置的字段填充默认值
func (cc *ChartConfig) ApplyDefaults() {
	if cc.Width <= 0 {
		cc.Width = DefaultWidth
	}
	if cc.Height <= 0 {
		cc.Height = DefaultHeight
	}
	if cc.PairCellSize <= 0 {
		cc.PairCellSize = DefaultPairCellSize
	}
	if cc.PreviewRows <= 0 {
		cc.PreviewRows = DefaultPreviewRows
	}
	if cc.HistogramBins <= 0 {
		cc.HistogramBins = DefaultHistogramBins
	}
	if len(cc.PairFeatures) == 0 {
		cc.PairFeatures = append([]string(nil), defaultPairChoice...)
	}
	if cc.PairDefaults == nil {
		cc.PairDefaults = append([]string(nil), defaultPairPicked...)
	}
	if cc.Title == "" {
		cc.Title = DefaultTitle
	}
	if cc.Palettes == nil {
		cc.Palettes = make(map[string][]string)
	}
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
// 用于从JSON字符串解析Duration
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
// 用于将Duration序列化为JSON字符串
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// GetPalette 按名称获取调色板，未配置时返回nil
func (cc *ChartConfig) GetPalette(name string) []string {
	mu.RLock()
	defer mu.RUnlock()
	return cc.Palettes[name]
}

// SetPalette 覆盖指定名称的调色板
func (cc *ChartConfig) SetPalette(name string, colors []string) {
	mu.Lock()
	defer mu.Unlock()
	if cc.Palettes == nil {
		cc.Palettes = make(map[string][]string)
	}
	cc.Palettes[name] = colors
}
