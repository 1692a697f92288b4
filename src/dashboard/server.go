package dashboard

import (
	"AutomobileDashboard/src/config"
	"AutomobileDashboard/src/processor"
	"AutomobileDashboard/src/storage"
	"AutomobileDashboard/src/utils"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"num": formatNumber,
}).ParseFS(templateFS, "templates/page.html"))

// WritePage 把渲染结果写成完整的HTML页面
func WritePage(w io.Writer, p *Page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return fmt.Errorf("生成页面失败: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Server 仪表盘的HTTP服务
type Server struct {
	store  *Store
	chart  *config.ChartConfig
	logger *storage.Logger
}

// NewServer 创建HTTP服务，store 中的数据集须已加载
func NewServer(store *Store, chart *config.ChartConfig, logger *storage.Logger) *Server {
	return &Server{store: store, chart: chart, logger: logger}
}

// Handler 注册全部路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/export.xlsx", s.handleExport)
	mux.HandleFunc("/logs", s.handleLogs)
	return mux
}

// handlePage 每次请求按当前控件取值重新渲染整页
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ds, ok := s.dataset(w)
	if !ok {
		return
	}

	start := time.Now()
	controls := ParseControls(r.URL.Query(), ds, s.chart)
	page, err := Render(ds, s.chart, controls)
	if err != nil {
		s.logger.Error("渲染页面失败: " + err.Error())
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := WritePage(w, page); err != nil {
		s.logger.Error(err.Error())
		return
	}
	s.logger.Debug(fmt.Sprintf("页面渲染完成 %s，耗时: %v", r.URL.RawQuery, time.Since(start)))
}

// handleExport 下载 mpg 区间内的数据(xlsx)
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w)
	if !ok {
		return
	}
	controls := ParseControls(r.URL.Query(), ds, s.chart)
	sub := ds.FilterMPG(controls.MPGLo, controls.MPGHi)

	var buf bytes.Buffer
	if err := utils.WriteExcel(sub, &buf, "cars"); err != nil {
		s.logger.Error("导出数据失败: " + err.Error())
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("cars_mpg_%s_%s.xlsx", formatNumber(controls.MPGLo), formatNumber(controls.MPGHi))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	buf.WriteTo(w)
}

// handleLogs 实时输出日志
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	logChan := s.logger.Subscribe()
	defer s.logger.Unsubscribe(logChan)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	for {
		select {
		case msg, ok := <-logChan:
			if !ok {
				return
			}
			// 写入失败说明客户端已断开
			if _, err := io.WriteString(w, msg); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) dataset(w http.ResponseWriter) (*processor.Dataset, bool) {
	ds := s.store.Get()
	if ds == nil {
		http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
		return nil, false
	}
	return ds, true
}
