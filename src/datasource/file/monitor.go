// monitor.go
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor 监控数据集文件，文件被写入或替换时回调
type FileMonitor struct {
	watchDir string
	target   string // 只关心的文件名，为空时目录内任意文件
	watcher  *fsnotify.Watcher
	lastFile string
	lastMod  time.Time
	mu       sync.Mutex
}

// NewFileMonitor 监控path所在目录；path为目录时监控目录内全部文件
func NewFileMonitor(path string) (*FileMonitor, error) {
	dir, target := path, ""
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		dir, target = filepath.Dir(path), filepath.Base(path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// 监控目录而不是文件，编辑器保存时常常是重命名替换
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("监控目录 %s 失败: %w", dir, err)
	}

	m := &FileMonitor{
		watchDir: dir,
		target:   target,
		watcher:  watcher,
	}
	if target != "" {
		if info, err := os.Stat(path); err == nil {
			m.lastMod = info.ModTime()
			m.lastFile = filepath.Join(dir, target)
		}
	}
	return m, nil
}

// Watch 阻塞监听，直到ctx结束或监控器关闭
func (m *FileMonitor) Watch(ctx context.Context, handler func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if !m.relevant(event) {
				continue
			}
			name := filepath.Clean(event.Name)
			info, err := os.Stat(name)
			if err != nil || info.IsDir() {
				continue
			}

			m.mu.Lock()
			if name != m.lastFile || info.ModTime().After(m.lastMod) {
				m.lastMod = info.ModTime()
				m.lastFile = name
				go handler(name)
			}
			m.mu.Unlock()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (m *FileMonitor) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return m.target == "" || filepath.Base(event.Name) == m.target
}

// Close 停止监控
func (m *FileMonitor) Close() error {
	return m.watcher.Close()
}
