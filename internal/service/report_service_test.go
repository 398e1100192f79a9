package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/model"
)

// settleMarchDays 造两天跨客户跨国家的日结算数据，供报表用例复用
func settleMarchDays(t *testing.T) {
	t.Helper()
	seedAgent(t, 1, "代理一", "10")
	seedCustomer(t, 1, 1, "客户一")
	seedCustomer(t, 2, 1, "客户二")
	seedChannel(t, 1, "通道一")

	d1 := mustTime(t, "2025-03-10 08:00:00")
	d2 := mustTime(t, "2025-03-11 08:00:00")
	seedRecords(t, 4, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", d1)
	seedRecords(t, 2, 2, 1, 1, "MX", model.RecordStatusSuccess, "0.03", "0.05", d1)
	seedRecords(t, 3, 1, 1, 1, "US", model.RecordStatusSuccess, "0.01", "0.02", d2)

	svc := NewDailySettleService()
	_, err := svc.SettleDate("2025-03-10")
	require.NoError(t, err)
	_, err = svc.SettleDate("2025-03-11")
	require.NoError(t, err)
}

func TestReport_Empty(t *testing.T) {
	setupTestDB(t)

	res, err := NewReportService().Generate(dto.ReportReq{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, dto.GroupByDate, res.GroupBy)
	assert.Empty(t, res.Groups)
	assert.Equal(t, 0, res.Summary.TotalCount)
	assert.True(t, res.Summary.TotalCost.IsZero())
	assert.True(t, res.Summary.TotalRevenue.IsZero())
	assert.True(t, res.Summary.TotalProfit.IsZero())
	assert.Equal(t, "0%", res.Summary.ProfitRate)
}

func TestReport_GroupByDate(t *testing.T) {
	setupTestDB(t)
	settleMarchDays(t)

	res, err := NewReportService().Generate(dto.ReportReq{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		GroupBy:   dto.GroupByDate,
	})
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "2025-03-10", res.Groups[0].GroupKey)
	assert.Equal(t, 6, res.Groups[0].TotalCount)
	assert.Equal(t, "2025-03-11", res.Groups[1].GroupKey)
	assert.Equal(t, 3, res.Groups[1].TotalCount)

	// 0.04+0.06+0.03 成本，0.08+0.10+0.06 收入
	assert.Equal(t, 9, res.Summary.TotalCount)
	assert.True(t, res.Summary.TotalCost.Equal(dec(t, "0.13")), "cost = %s", res.Summary.TotalCost)
	assert.True(t, res.Summary.TotalRevenue.Equal(dec(t, "0.24")))
	assert.True(t, res.Summary.TotalProfit.Equal(dec(t, "0.11")))
	assert.Equal(t, "45.83%", res.Summary.ProfitRate)
}

func TestReport_GroupByCustomerUsesNames(t *testing.T) {
	setupTestDB(t)
	settleMarchDays(t)

	res, err := NewReportService().Generate(dto.ReportReq{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		GroupBy:   dto.GroupByCustomer,
	})
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	keys := []string{res.Groups[0].GroupKey, res.Groups[1].GroupKey}
	assert.Contains(t, keys, "客户一")
	assert.Contains(t, keys, "客户二")
	for _, g := range res.Groups {
		if g.GroupKey == "客户一" {
			assert.Equal(t, 7, g.TotalCount)
		} else {
			assert.Equal(t, 2, g.TotalCount)
		}
	}
}

func TestReport_GroupByCountryWithFilter(t *testing.T) {
	setupTestDB(t)
	settleMarchDays(t)

	res, err := NewReportService().Generate(dto.ReportReq{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		GroupBy:   dto.GroupByCountry,
		Country:   "US",
	})
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "US", res.Groups[0].GroupKey)
	assert.Equal(t, 7, res.Groups[0].TotalCount)
}

func TestReport_InvalidInputs(t *testing.T) {
	setupTestDB(t)
	svc := NewReportService()

	_, err := svc.Generate(dto.ReportReq{StartDate: "2025/03/01", EndDate: "2025-03-31"})
	assert.Equal(t, constant.CodeInvalidDate, constant.CodeOf(err))

	_, err = svc.Generate(dto.ReportReq{StartDate: "2025-03-31", EndDate: "2025-03-01"})
	assert.Equal(t, constant.CodeInvalidRange, constant.CodeOf(err))

	_, err = svc.Generate(dto.ReportReq{StartDate: "2025-03-01", EndDate: "2025-03-31", GroupBy: "phone"})
	assert.Equal(t, constant.CodeInvalidGroupBy, constant.CodeOf(err))
}

func TestOverview(t *testing.T) {
	setupTestDB(t)
	settleMarchDays(t)

	_, err := NewAgentSettleService().Settle(1, "2025-03")
	require.NoError(t, err)
	_, err = NewChannelSettleService().Settle(1, "2025-03", "")
	require.NoError(t, err)

	res, err := NewReportService().Overview("2025-03")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Daily.Count, "两个日期三个分组键")
	assert.Equal(t, 3, res.Daily.StatusCounts[model.SettleStatusCompleted])
	assert.True(t, res.Daily.TotalProfit.Equal(dec(t, "0.11")))

	assert.Equal(t, 1, res.Agent.Count)
	// 佣金 = 利润 0.11 × 10%
	assert.True(t, res.CommissionTotal.Equal(dec(t, "0.011")), "commission = %s", res.CommissionTotal)

	assert.Equal(t, 2, res.Channel.Count, "US 与 MX 两单")
	assert.True(t, res.Channel.TotalCost.Equal(dec(t, "0.13")))

	_, err = NewReportService().Overview("2025-3")
	assert.Equal(t, constant.CodeInvalidMonth, constant.CodeOf(err))
}
