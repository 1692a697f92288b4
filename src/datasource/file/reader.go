// reader.go
package file

import (
	"AutomobileDashboard/src/utils"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 加载错误类型，调用方通过 errors.Is 判断
var (
	ErrFileNotFound  = errors.New("dataset file not found")
	ErrParse         = errors.New("dataset parse error")
	ErrMissingColumn = errors.New("dataset missing column")
)

// RequiredColumns 数据集至少需要包含的列
var RequiredColumns = []string{
	"mpg", "cylinders", "displacement", "horsepower", "weight", "acceleration", "origin",
}

// 已知列的固定类型，其他列自动推断
var columnTypes = map[string]series.Type{
	"mpg":          series.Float,
	"displacement": series.Float,
	"horsepower":   series.Float,
	"weight":       series.Float,
	"acceleration": series.Float,
	"cylinders":    series.Int,
	"model_year":   series.Int,
	"origin":       series.String,
	"name":         series.String,
}

// 视为缺失值的字符串
var nanValues = []string{"", "NA", "NaN", "<nil>", "?"}

// LoadOptions 数据集加载参数
type LoadOptions struct {
	Encoding  string   // utf-8(默认) / gbk / gb2312
	SheetName string   // xlsx工作表，为空时取第一个
	HeaderRow int      // xlsx标题行
	Required  []string // 必需列，为nil时使用 RequiredColumns
}

// LoadDataset 按扩展名读取数据集文件(.csv / .xlsx)并校验必需列
func LoadDataset(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return dataframe.DataFrame{}, fmt.Errorf("无法访问数据文件 %s: %w", path, err)
	}
	if info.IsDir() {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	var df dataframe.DataFrame
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		df, err = ReadXLSX(path, opts.SheetName, opts.HeaderRow)
	default:
		df, err = ReadCSV(path, opts.Encoding)
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	required := opts.Required
	if required == nil {
		required = RequiredColumns
	}
	if missing := utils.MissingColumns(df, required); len(missing) > 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return df, nil
}

// ReadCSV 读取CSV文件为DataFrame
func ReadCSV(path, encoding string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()

	r, err := decodingReader(f, encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df := dataframe.ReadCSV(r, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrParse, path, df.Err)
	}
	return df, nil
}

// ReadXLSX 读取xlsx文件中的指定工作表
func ReadXLSX(filePath, sheetName string, headerRow int) (dataframe.DataFrame, error) {

	// 1. 使用tealeg/xlsx打开Excel文件
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: xlsx open file: %v", ErrParse, err)
	}

	// 2. 获取工作表
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: excel文件中没有工作表", ErrParse)
	}
	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		s, ok := xlFile.Sheet[sheetName]
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: 工作表 %s 不存在", ErrParse, sheetName)
		}
		sheet = s
	}

	// 3. 转换为Gota DataFrame
	records, err := sheetRecords(sheet, headerRow)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrParse, filePath, df.Err)
	}
	return df, nil
}

// sheetRecords 将xlsx.Sheet转换为字符串记录，第一条为标题
func sheetRecords(sheet *xlsx.Sheet, headerRow int) ([][]string, error) {
	if headerRow < 0 || len(sheet.Rows) <= headerRow {
		return nil, fmt.Errorf("%w: 工作表 %s 没有标题行", ErrParse, sheet.Name)
	}

	// 获取列名
	var headers []string
	for _, cell := range sheet.Rows[headerRow].Cells {
		headers = append(headers, strings.TrimSpace(cell.String()))
	}
	// 去掉尾部空列名
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: 工作表 %s 标题行为空", ErrParse, sheet.Name)
	}

	records := make([][]string, 0, len(sheet.Rows)-headerRow)
	records = append(records, headers)

	// 填充数据(标题行之后)
	for _, row := range sheet.Rows[headerRow+1:] {
		if row == nil {
			continue
		}
		rec := make([]string, len(headers))
		empty := true
		for i, cell := range row.Cells {
			if i >= len(headers) { // 确保不超出列数范围
				break
			}
			rec[i] = cell.String()
			if rec[i] != "" {
				empty = false
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}

	return records, nil
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(columnTypes),
		dataframe.NaNValues(nanValues),
	}
}

// decodingReader 按配置的编码转换为UTF-8
// 支持GBK/GB2312，UTF-8时去掉BOM
func decodingReader(input io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return transform.NewReader(input, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "gbk", "gb2312":
		return transform.NewReader(input, simplifiedchinese.GBK.NewDecoder()), nil
	case "gb18030":
		return transform.NewReader(input, simplifiedchinese.GB18030.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("不支持的文件编码: %s", encoding)
	}
}
