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

func TestDailySettle_Basic(t *testing.T) {
	setupTestDB(t)
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusSuccess, "1", "2", mustTime(t, "2025-03-10 08:00:00"))

	svc := NewDailySettleService()
	res, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)
	require.Equal(t, 1, res.GroupCount)
	require.Equal(t, 2, res.RecordCount)

	s := res.Settlements[0]
	assert.Equal(t, 2, s.TotalCount)
	assert.Equal(t, 2, s.SuccessCount)
	assert.Equal(t, 0, s.FailedCount)
	assert.True(t, s.TotalCost.Equal(dec(t, "2")), "total_cost = %s", s.TotalCost)
	assert.True(t, s.TotalRevenue.Equal(dec(t, "4")), "total_revenue = %s", s.TotalRevenue)
	assert.True(t, s.TotalProfit.Equal(dec(t, "2")), "total_profit = %s", s.TotalProfit)
	assert.True(t, s.CostPrice.Equal(dec(t, "1")))
	assert.True(t, s.SalePrice.Equal(dec(t, "2")))
	assert.Equal(t, model.SettleStatusCompleted, s.Status)
}

func TestDailySettle_ExcludesNonSuccess(t *testing.T) {
	setupTestDB(t)
	day := mustTime(t, "2025-03-10 09:00:00")
	seedRecords(t, 10, 1, 1, 1, "US", model.RecordStatusSuccess, "0.05", "0.10", day)
	seedRecords(t, 5, 1, 1, 1, "US", model.RecordStatusFailed, "0.05", "0.10", day)
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusPending, "0.05", "0.10", day)

	svc := NewDailySettleService()
	res, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)
	require.Len(t, res.Settlements, 1)
	assert.Equal(t, 10, res.Settlements[0].TotalCount)
	assert.True(t, res.Settlements[0].TotalCost.Equal(dec(t, "0.5")))
}

func TestDailySettle_Idempotent(t *testing.T) {
	setupTestDB(t)
	day := mustTime(t, "2025-03-10 12:30:00")
	seedRecords(t, 3, 1, 1, 1, "US", model.RecordStatusSuccess, "0.1", "0.2", day)
	seedRecords(t, 2, 2, 1, 1, "MX", model.RecordStatusSuccess, "0.3", "0.5", day)

	svc := NewDailySettleService()
	first, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)
	second, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)

	// 重复结算不产生新行，汇总字段逐项相等
	var count int64
	require.NoError(t, dal.MainDB.Model(&model.SettleDaily{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	require.Len(t, second.Settlements, len(first.Settlements))
	for i := range first.Settlements {
		a, b := first.Settlements[i], second.Settlements[i]
		assert.Equal(t, a.ID, b.ID, "汇总行 id 不变")
		assert.Equal(t, a.TotalCount, b.TotalCount)
		assert.True(t, a.TotalCost.Equal(b.TotalCost))
		assert.True(t, a.TotalRevenue.Equal(b.TotalRevenue))
		assert.True(t, a.TotalProfit.Equal(b.TotalProfit))
	}

	var detailCount int64
	require.NoError(t, dal.MainDB.Model(&model.SettleDailyDetail{}).Count(&detailCount).Error)
	assert.EqualValues(t, 5, detailCount, "明细整体重建，无重复行")
}

func TestDailySettle_BalanceInvariant(t *testing.T) {
	setupTestDB(t)
	day := mustTime(t, "2025-03-11 10:00:00")
	seedRecord(t, 1, 1, 1, "US", model.RecordStatusSuccess, "0.0123", "0.0456", day)
	seedRecord(t, 1, 1, 1, "US", model.RecordStatusSuccess, "0.0217", "0.0789", day)
	seedRecord(t, 1, 1, 1, "US", model.RecordStatusSuccess, "0.0310", "0.0655", day)

	svc := NewDailySettleService()
	res, err := svc.SettleDate("2025-03-11")
	require.NoError(t, err)
	s := res.Settlements[0]

	d := &dao.DailyDao{}
	details, err := d.ListDetails(s.ID)
	require.NoError(t, err)
	require.Len(t, details, s.TotalCount)

	sumCost := dec(t, "0")
	sumRevenue := dec(t, "0")
	for _, row := range details {
		sumCost = sumCost.Add(row.Cost)
		sumRevenue = sumRevenue.Add(row.Revenue)
	}
	assert.True(t, sumCost.Equal(s.TotalCost), "Σdetail.cost=%s total_cost=%s", sumCost, s.TotalCost)
	assert.True(t, sumRevenue.Equal(s.TotalRevenue))
}

func TestDailySettle_EmptyDay(t *testing.T) {
	setupTestDB(t)

	svc := NewDailySettleService()
	res, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, res.GroupCount)
	assert.Empty(t, res.Settlements)

	var count int64
	require.NoError(t, dal.MainDB.Model(&model.SettleDaily{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDailySettle_InvalidDate(t *testing.T) {
	setupTestDB(t)

	svc := NewDailySettleService()
	_, err := svc.SettleDate("2025/03/10")
	require.Error(t, err)
	assert.Equal(t, constant.CodeInvalidDate, constant.CodeOf(err))
}

func TestDailySettle_Range(t *testing.T) {
	setupTestDB(t)
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusSuccess, "1", "2", mustTime(t, "2025-03-01 08:00:00"))
	seedRecords(t, 1, 1, 1, 1, "US", model.RecordStatusSuccess, "1", "2", mustTime(t, "2025-03-03 08:00:00"))

	svc := NewDailySettleService()
	res, err := svc.SettleRange("2025-03-01", "2025-03-03")
	require.NoError(t, err)
	assert.Len(t, res.Success, 3, "无数据的日期也算成功")
	assert.Empty(t, res.Failed)

	var count int64
	require.NoError(t, dal.MainDB.Model(&model.SettleDaily{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDailySettle_RangeInvalid(t *testing.T) {
	setupTestDB(t)

	svc := NewDailySettleService()
	_, err := svc.SettleRange("2025-03-05", "2025-03-01")
	require.Error(t, err)
	assert.Equal(t, constant.CodeInvalidRange, constant.CodeOf(err))
}

func TestDailyDelete(t *testing.T) {
	setupTestDB(t)
	seedRecords(t, 2, 1, 1, 1, "US", model.RecordStatusSuccess, "1", "2", mustTime(t, "2025-03-10 08:00:00"))

	svc := NewDailySettleService()
	res, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)
	id := res.Settlements[0].ID

	require.NoError(t, svc.Delete(id))

	var count int64
	require.NoError(t, dal.MainDB.Model(&model.SettleDailyDetail{}).Where("settle_id = ?", id).Count(&count).Error)
	assert.Zero(t, count, "明细随汇总一并删除")

	err = svc.Delete(id)
	require.Error(t, err)
	assert.Equal(t, constant.CodeSettleNotFound, constant.CodeOf(err))
}
