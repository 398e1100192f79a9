package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/model"
)

func TestExportDailyCSV_HeaderAndBOM(t *testing.T) {
	setupTestDB(t)

	out, err := NewExportService().ExportDailyCSV("2025-03-01", "2025-03-31")
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "BOM 开头")
	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	require.Len(t, lines, 1, "无数据只有表头")
	assert.Equal(t, "结算日期,客户,通道,国家,发送总数,成功数,成本价,销售价,总成本,总收入,总利润,状态", lines[0])
}

func TestExportDailyCSV_Rows(t *testing.T) {
	setupTestDB(t)
	seedAgent(t, 1, "代理一", "10")
	seedCustomer(t, 1, 1, "客户一")
	seedChannel(t, 1, "通道一")
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", mustTime(t, "2025-03-10 08:00:00"))

	_, err := NewDailySettleService().SettleDate("2025-03-10")
	require.NoError(t, err)

	out, err := NewExportService().ExportDailyCSV("2025-03-01", "2025-03-31")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-03-10,客户一,通道一,US,2,2,0.0100,0.0200,0.0200,0.0400,0.0200,已完成", lines[1])
}

func TestExportDailyCSV_NameFallback(t *testing.T) {
	setupTestDB(t)
	seedAgent(t, 1, "代理一", "10")
	seedCustomer(t, 1, 1, "客户一")
	// 通道 9 未建档，名称列回退 ID
	seedRecords(t, 1, 1, 9, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", mustTime(t, "2025-03-10 08:00:00"))

	_, err := NewDailySettleService().SettleDate("2025-03-10")
	require.NoError(t, err)

	out, err := NewExportService().ExportDailyCSV("2025-03-10", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, string(out), "客户一,9,US")
}

func TestExportDailyCSV_Invalid(t *testing.T) {
	setupTestDB(t)
	svc := NewExportService()

	_, err := svc.ExportDailyCSV("bad", "2025-03-31")
	assert.Equal(t, constant.CodeInvalidDate, constant.CodeOf(err))
	_, err = svc.ExportDailyCSV("2025-03-31", "2025-03-01")
	assert.Equal(t, constant.CodeInvalidRange, constant.CodeOf(err))
}
