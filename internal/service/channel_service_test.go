package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/dao"
	"sms-settle-api/internal/model"
)

func TestChannelSettle_FanOutByCountry(t *testing.T) {
	setupTestDB(t)
	seedChannel(t, 1, "通道一")
	day := mustTime(t, "2025-03-10 08:00:00")
	seedRecords(t, 3, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", day)
	seedRecords(t, 2, 1, 1, 1, "MX", model.RecordStatusSuccess, "0.03", "0.05", day)

	list, err := NewChannelSettleService().Settle(1, "2025-03", "")
	require.NoError(t, err)
	require.Len(t, list, 2, "按国家扇出，一国一单")
	assert.Equal(t, "MX", list[0].Country)
	assert.Equal(t, "US", list[1].Country)

	var count int64
	require.NoError(t, dal.MainDB.Model(&model.SettleChannelMonth{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestChannelSettle_SuccessBasisCost(t *testing.T) {
	setupTestDB(t)
	seedChannel(t, 1, "通道一")
	day := mustTime(t, "2025-03-10 08:00:00")
	seedRecords(t, 8, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", day)
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusFailed, "0.01", "0.02", day)

	list, err := NewChannelSettleService().Settle(1, "2025-03", "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	s := list[0]
	// 成功口径计成本，提交量只进成功率
	assert.Equal(t, 8, s.TotalSuccess)
	assert.Equal(t, 10, s.TotalSubmitted)
	assert.True(t, s.SuccessRate.Equal(dec(t, "80")), "success_rate = %s", s.SuccessRate)
	assert.True(t, s.TotalCost.Equal(dec(t, "0.08")), "total_cost = %s", s.TotalCost)
	assert.True(t, s.AvgCostPrice.Equal(dec(t, "0.01")))
	assert.Equal(t, model.SettleStatusCompleted, s.Status)

	d := &dao.ChannelSettleDao{}
	details, err := d.ListDetails(s.ID)
	require.NoError(t, err)
	require.Len(t, details, s.TotalSuccess, "一条成功记录一条明细")
	sumCost := dec(t, "0")
	for _, row := range details {
		sumCost = sumCost.Add(row.CostPrice)
	}
	assert.True(t, sumCost.Equal(s.TotalCost))
}

func TestChannelSettle_PinnedCountry(t *testing.T) {
	setupTestDB(t)
	seedChannel(t, 1, "通道一")
	day := mustTime(t, "2025-03-10 08:00:00")
	seedRecords(t, 3, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", day)
	seedRecords(t, 2, 1, 1, 1, "MX", model.RecordStatusSuccess, "0.03", "0.05", day)

	list, err := NewChannelSettleService().Settle(1, "2025-03", "US")
	require.NoError(t, err)
	require.Len(t, list, 1, "指定国家只出一单")
	assert.Equal(t, "US", list[0].Country)
	assert.Equal(t, 3, list[0].TotalSuccess)
}

func TestChannelSettle_Idempotent(t *testing.T) {
	setupTestDB(t)
	seedChannel(t, 1, "通道一")
	seedRecords(t, 4, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", mustTime(t, "2025-03-10 08:00:00"))

	svc := NewChannelSettleService()
	first, err := svc.Settle(1, "2025-03", "")
	require.NoError(t, err)

	_, err = svc.Settle(1, "2025-03", "")
	require.Error(t, err)
	assert.Equal(t, constant.CodeAlreadySettled, constant.CodeOf(err))

	second, err := svc.Resettle(1, "2025-03", "")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, first[0].TotalCost.Equal(second[0].TotalCost))

	var count int64
	require.NoError(t, dal.MainDB.Model(&model.SettleChannelMonth{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	var detailCount int64
	require.NoError(t, dal.MainDB.Model(&model.SettleChannelMonthDetail{}).Count(&detailCount).Error)
	assert.EqualValues(t, 4, detailCount)
}

func TestChannelSettle_PaidImmutable(t *testing.T) {
	setupTestDB(t)
	seedChannel(t, 1, "通道一")
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", mustTime(t, "2025-03-10 08:00:00"))

	svc := NewChannelSettleService()
	list, err := svc.Settle(1, "2025-03", "")
	require.NoError(t, err)
	require.NoError(t, svc.MarkPaid(list[0].ID))

	_, err = svc.Resettle(1, "2025-03", "")
	require.Error(t, err)
	assert.Equal(t, constant.CodePaidImmutable, constant.CodeOf(err))

	err = svc.Delete(list[0].ID)
	require.Error(t, err)
	assert.Equal(t, constant.CodePaidImmutable, constant.CodeOf(err))
}

func TestChannelSettle_ChannelMissing(t *testing.T) {
	setupTestDB(t)

	_, err := NewChannelSettleService().Settle(99, "2025-03", "")
	require.Error(t, err)
	assert.Equal(t, constant.CodeChannelMissing, constant.CodeOf(err))
}

func TestChannelAutoSettleAll_PartialFailure(t *testing.T) {
	setupTestDB(t)
	day := mustTime(t, "2025-03-10 08:00:00")
	seedChannel(t, 1, "通道一")
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", day)
	seedChannel(t, 2, "通道二")
	seedRecords(t, 2, 1, 2, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", day)
	seedChannel(t, 3, "通道三") // 无记录，跳过

	svc := NewChannelSettleService()
	// 通道二先行结算，批量时触发冲突错误
	_, err := svc.Settle(2, "2025-03", "")
	require.NoError(t, err)

	res, err := svc.AutoSettleAll("2025-03")
	require.NoError(t, err)
	require.Len(t, res.Success, 1)
	assert.EqualValues(t, 1, res.Success[0].ChannelID)
	require.Len(t, res.Failed, 1)
	assert.EqualValues(t, 2, res.Failed[0].EntityID)
	require.Len(t, res.Skipped, 1)
	assert.EqualValues(t, 3, res.Skipped[0].EntityID)
}
