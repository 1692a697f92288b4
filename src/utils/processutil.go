package utils

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// 辅助函数：判断DataFrame是否有某列
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// MissingColumns 返回df中缺少的列名(保持输入顺序)
func MissingColumns(df dataframe.DataFrame, names []string) []string {
	var missing []string
	for _, name := range names {
		if !HasColumn(df, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// SaveToExcel 将DataFrame保存为Excel文件
func SaveToExcel(df dataframe.DataFrame, filePath, sheetName string) error {
	f, err := newWorkbook(df, sheetName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("保存Excel文件失败: %w", err)
	}
	return nil
}

// WriteExcel 将DataFrame以xlsx格式写入w，用于HTTP下载
func WriteExcel(df dataframe.DataFrame, w io.Writer, sheetName string) error {
	f, err := newWorkbook(df, sheetName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("写出Excel失败: %w", err)
	}
	return nil
}

func newWorkbook(df dataframe.DataFrame, sheetName string) (*excelize.File, error) {
	f := excelize.NewFile()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("设置工作表名称失败: %w", err)
		}
	}

	// 写入列名
	colNames := df.Names()
	for i, name := range colNames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	// 写入数据，缺失值留空
	for colIdx, colName := range colNames {
		col := df.Col(colName)
		for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
			elem := col.Elem(rowIdx)
			if elem.IsNA() || (elem.Type() == series.Float && math.IsNaN(elem.Float())) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, elem.Val())
		}
	}

	return f, nil
}
