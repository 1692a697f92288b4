package email

import (
	"AutomobileDashboard/src/storage"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailService 内存中的邮箱
type fakeMailService struct {
	emails       []*Email
	connectErr   error
	fetchErr     error
	disconnected bool
}

func (f *fakeMailService) Connect() error                       { return f.connectErr }
func (f *fakeMailService) Disconnect()                          { f.disconnected = true }
func (f *fakeMailService) FetchUnreadEmails() ([]*Email, error) { return f.emails, f.fetchErr }

func newTestLogger(t *testing.T) *storage.Logger {
	t.Helper()
	logger, err := storage.NewLogger(filepath.Join(t.TempDir(), "app.log"))
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger
}

func csvAttachment(name string) *Attachment {
	return &Attachment{Filename: name, Content: []byte("mpg,cylinders,horsepower,origin\n18,8,130,usa\n")}
}

func TestCheckAndProcessEmailsPicksLatest(t *testing.T) {
	now := time.Now()
	svc := &fakeMailService{emails: []*Email{
		{UID: 1, Date: now.Add(-2 * time.Hour), Subject: "汽车数据 周报", Attachments: []*Attachment{csvAttachment("old.csv")}},
		{UID: 2, Date: now.Add(-1 * time.Hour), Subject: "汽车数据 周报", Attachments: []*Attachment{csvAttachment("new.csv")}},
		{UID: 3, Date: now, Subject: "汽车数据 无附件"},
		{UID: 4, Date: now, Subject: "其他主题", Attachments: []*Attachment{csvAttachment("x.csv")}},
	}}

	got, err := CheckAndProcessEmails(svc, "汽车数据", newTestLogger(t))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint32(2), got.UID)
	assert.True(t, svc.disconnected)
}

func TestCheckAndProcessEmailsEmptyAndErrors(t *testing.T) {
	logger := newTestLogger(t)

	got, err := CheckAndProcessEmails(&fakeMailService{}, "汽车数据", logger)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = CheckAndProcessEmails(&fakeMailService{connectErr: errors.New("refused")}, "汽车数据", logger)
	assert.ErrorContains(t, err, "refused")

	svc := &fakeMailService{fetchErr: errors.New("timeout")}
	_, err = CheckAndProcessEmails(svc, "汽车数据", logger)
	assert.ErrorContains(t, err, "timeout")
	assert.True(t, svc.disconnected)
}

func TestAttachmentIsDataset(t *testing.T) {
	assert.True(t, (&Attachment{Filename: "Automobile.CSV"}).IsDataset())
	assert.True(t, (&Attachment{Filename: "cars.xlsx"}).IsDataset())
	assert.False(t, (&Attachment{Filename: "report.pdf"}).IsDataset())

	e := &Email{Attachments: []*Attachment{{Filename: "a.txt"}, csvAttachment("b.csv")}}
	assert.Equal(t, "b.csv", e.DatasetAttachment().Filename)
}

func TestHandlerSavesAttachment(t *testing.T) {
	dir := t.TempDir()
	logger := newTestLogger(t)
	h := NewDatasetAttachmentHandler("汽车数据", dir, "Automobile.csv")

	email := &Email{UID: 7, Subject: "汽车数据", Attachments: []*Attachment{csvAttachment("../cars export.csv")}}
	path, err := h.Handle(email, logger)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Automobile.csv"), path)
	assert.True(t, h.IsProcessed(7))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "mpg,"))

	// 同一封邮件只处理一次
	path, err = h.Handle(email, logger)
	require.NoError(t, err)
	assert.Empty(t, path)

	// 主题不匹配
	path, err = h.Handle(&Email{UID: 8, Subject: "其他", Attachments: []*Attachment{csvAttachment("a.csv")}}, logger)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.False(t, h.IsProcessed(8))

	path, err = h.Handle(nil, logger)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestHandlerKeepsAttachmentName(t *testing.T) {
	dir := t.TempDir()
	h := NewDatasetAttachmentHandler("cars", dir, "")

	path, err := h.Handle(&Email{UID: 1, Subject: "cars", Attachments: []*Attachment{{Filename: "sub/cars.xlsx", Content: []byte("x")}}}, newTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cars.xlsx"), path)

	h = NewDatasetAttachmentHandler("cars", dir, "Automobile.csv")
	assert.Equal(t, "Automobile.xlsx", h.targetName("cars.XLSX"))
}

func TestDecodeHeader(t *testing.T) {
	// "汽车" 的 GBK 编码
	assert.Equal(t, "汽车数据", decodeHeader("=?GBK?B?xvuztQ==?=数据"))
	assert.Equal(t, "hello", decodeHeader("=?utf-8?q?hello?="))
	assert.Equal(t, "plain", decodeHeader("plain"))
}

func TestParseEmail(t *testing.T) {
	raw := strings.Join([]string{
		"From: sender@example.com",
		"Subject: =?utf-8?q?cars?=",
		"Date: Mon, 19 Oct 2026 10:00:00 +0800",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"see attachment",
		"--b1",
		"Content-Type: text/csv",
		`Content-Disposition: attachment; filename="Automobile.csv"`,
		"",
		"mpg,origin",
		"18,usa",
		"--b1--",
		"",
	}, "\r\n")

	email, err := parseEmail(strings.NewReader(raw), 42)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), email.UID)
	assert.Equal(t, "cars", email.Subject)
	require.Len(t, email.Attachments, 1)
	assert.Equal(t, "Automobile.csv", email.Attachments[0].Filename)
	assert.Contains(t, string(email.Attachments[0].Content), "18,usa")

	_, err = parseEmail(nil, 1)
	assert.Error(t, err)
}
