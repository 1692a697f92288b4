package dashboard

import (
	"AutomobileDashboard/src/datasource/file"
	"AutomobileDashboard/src/processor"
	"fmt"
	"sync"
)

// Store 持有已加载并完成填充的数据集，线程安全
type Store struct {
	path string
	opts file.LoadOptions
	ds   *processor.Dataset
	mu   sync.RWMutex
}

// NewStore 创建数据集存储，此时尚未加载
func NewStore(path string, opts file.LoadOptions) *Store {
	return &Store{path: path, opts: opts}
}

// Path 数据文件路径
func (s *Store) Path() string { return s.path }

// Get 当前数据集(线程安全)，尚未加载时返回 nil
func (s *Store) Get() *processor.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Set 替换当前数据集(线程安全)
func (s *Store) Set(ds *processor.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
}

// Load 读取数据文件并执行一次填充，成功后替换当前数据集
// 失败时保留原数据集
func (s *Store) Load() (*processor.Dataset, error) {
	df, err := file.LoadDataset(s.path, s.opts)
	if err != nil {
		return nil, err
	}
	ds, err := processor.Prepare(df, s.path)
	if err != nil {
		return nil, fmt.Errorf("准备数据集失败: %w", err)
	}
	s.Set(ds)
	return ds, nil
}
