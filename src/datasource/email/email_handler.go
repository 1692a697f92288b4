// email_handler.go
package email

import (
	"AutomobileDashboard/src/storage"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ====================== 邮件处理器实现 ======================

// DatasetAttachmentHandler 把目标邮件中的数据文件附件保存到数据目录
type DatasetAttachmentHandler struct {
	TargetSubject string          // 目标邮件主题关键词
	DataDir       string          // 附件保存目录
	Filename      string          // 保存文件名，为空时使用附件原名
	processedUIDs map[uint32]bool // 已处理邮件UID记录
	mu            sync.RWMutex    // 保护processedUIDs的读写锁
}

// NewDatasetAttachmentHandler 创建附件处理器
// filename 非空时附件以该名字保存(扩展名取附件自身的)，便于文件监听器识别
func NewDatasetAttachmentHandler(subject, dataDir, filename string) *DatasetAttachmentHandler {
	return &DatasetAttachmentHandler{
		TargetSubject: subject,
		DataDir:       dataDir,
		Filename:      filename,
		processedUIDs: make(map[uint32]bool),
	}
}

// IsProcessed 检查邮件是否已处理过（线程安全）
func (h *DatasetAttachmentHandler) IsProcessed(uid uint32) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.processedUIDs[uid]
}

// markAsProcessed 标记邮件为已处理（线程安全）
func (h *DatasetAttachmentHandler) markAsProcessed(uid uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.processedUIDs[uid] = true
}

// Handle 处理单个邮件，返回保存的文件路径
// 已处理、主题不匹配或没有数据附件时返回空路径
func (h *DatasetAttachmentHandler) Handle(email *Email, logger *storage.Logger) (string, error) {
	if email == nil || h.IsProcessed(email.UID) {
		return "", nil
	}

	if !strings.Contains(email.Subject, h.TargetSubject) {
		logger.Debug("跳过主题不匹配的邮件: " + email.Subject)
		return "", nil
	}

	attachment := email.DatasetAttachment()
	if attachment == nil {
		logger.Debug(fmt.Sprintf("邮件(UID:%d)没有数据附件", email.UID))
		return "", nil
	}

	logger.Info(fmt.Sprintf("处理邮件: %s 发件人: %s 日期: %s",
		email.Subject, email.From, email.Date.Format("2006-01-02 15:04:05")))

	if err := os.MkdirAll(h.DataDir, 0755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	filePath := filepath.Join(h.DataDir, h.targetName(attachment.Filename))
	// 先写临时文件再改名，监听器不会读到写了一半的文件
	tmp := filePath + ".part"
	if err := os.WriteFile(tmp, attachment.Content, 0644); err != nil {
		return "", fmt.Errorf("保存附件失败: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("保存附件失败: %w", err)
	}

	h.markAsProcessed(email.UID)
	logger.Info("附件已保存到: " + filePath)
	return filePath, nil
}

// targetName 保存文件名；附件名只取基本名，防止写出数据目录
func (h *DatasetAttachmentHandler) targetName(attachment string) string {
	base := filepath.Base(attachment)
	if h.Filename == "" {
		return base
	}
	stem := strings.TrimSuffix(h.Filename, filepath.Ext(h.Filename))
	return stem + strings.ToLower(filepath.Ext(base))
}
