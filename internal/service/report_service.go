package service

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dao"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/model"
	"sms-settle-api/internal/utils/timeutil"
)

// ReportService 结算报表：只读已完成的日结算汇总，不碰原始记录，
// 不加锁不开事务，对并发重算保持最终一致。
type ReportService struct {
	dailyDao   *dao.DailyDao
	agentDao   *dao.AgentSettleDao
	channelDao *dao.ChannelSettleDao
	dirDao     *dao.DirectoryDao
	loc        *time.Location
}

func NewReportService() *ReportService {
	return &ReportService{
		dailyDao:   &dao.DailyDao{},
		agentDao:   &dao.AgentSettleDao{},
		channelDao: &dao.ChannelSettleDao{},
		dirDao:     &dao.DirectoryDao{},
		loc:        settleLoc(),
	}
}

// Generate 按维度聚合日结算。无匹配数据时返回全零汇总，profit_rate 固定 "0%"。
func (s *ReportService) Generate(req dto.ReportReq) (*dto.ReportResult, error) {
	if _, err := timeutil.ParseDate(req.StartDate, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(req.StartDate)
	}
	if _, err := timeutil.ParseDate(req.EndDate, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(req.EndDate)
	}
	if req.StartDate > req.EndDate {
		return nil, constant.NewError(constant.CodeInvalidRange)
	}
	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = dto.GroupByDate
	}
	switch groupBy {
	case dto.GroupByDate, dto.GroupByCustomer, dto.GroupByChannel, dto.GroupByCountry:
	default:
		return nil, constant.NewError(constant.CodeInvalidGroupBy).WithDetail(groupBy)
	}

	rows, err := s.dailyDao.ListCompleted(req.StartDate, req.EndDate, req.CustomerID, req.ChannelID, req.Country)
	if err != nil {
		return nil, err
	}

	keyOf, err := s.groupKeyFunc(groupBy, rows)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*dto.ReportGroup)
	summary := dto.ReportSummary{
		TotalCost:    decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, r := range rows {
		k := keyOf(r)
		g := byKey[k]
		if g == nil {
			g = &dto.ReportGroup{
				GroupKey:     k,
				TotalCost:    decimal.Zero,
				TotalRevenue: decimal.Zero,
				TotalProfit:  decimal.Zero,
			}
			byKey[k] = g
		}
		g.TotalCount += r.TotalCount
		g.SuccessCount += r.SuccessCount
		g.TotalCost = g.TotalCost.Add(r.TotalCost)
		g.TotalRevenue = g.TotalRevenue.Add(r.TotalRevenue)
		g.TotalProfit = g.TotalProfit.Add(r.TotalProfit)

		summary.TotalCount += r.TotalCount
		summary.SuccessCount += r.SuccessCount
		summary.TotalCost = summary.TotalCost.Add(r.TotalCost)
		summary.TotalRevenue = summary.TotalRevenue.Add(r.TotalRevenue)
		summary.TotalProfit = summary.TotalProfit.Add(r.TotalProfit)
	}

	// 收入为 0 时固定 "0%"，不做除法
	if summary.TotalRevenue.IsZero() {
		summary.ProfitRate = "0%"
	} else {
		summary.ProfitRate = percent(summary.TotalProfit, summary.TotalRevenue).StringFixed(2) + "%"
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	groups := make([]dto.ReportGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, *byKey[k])
	}

	return &dto.ReportResult{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		GroupBy:   groupBy,
		Groups:    groups,
		Summary:   summary,
	}, nil
}

// groupKeyFunc 返回分组键函数；客户/通道维度用名称做键，查不到回退 ID
func (s *ReportService) groupKeyFunc(groupBy string, rows []model.SettleDaily) (func(model.SettleDaily) string, error) {
	switch groupBy {
	case dto.GroupByDate:
		return func(r model.SettleDaily) string { return r.SettleDate }, nil
	case dto.GroupByCountry:
		return func(r model.SettleDaily) string { return r.Country }, nil
	case dto.GroupByCustomer:
		ids := make([]uint64, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.CustomerID)
		}
		names, err := s.dirDao.CustomerNames(ids)
		if err != nil {
			return nil, err
		}
		return func(r model.SettleDaily) string {
			if n, ok := names[r.CustomerID]; ok {
				return n
			}
			return strconv.FormatUint(r.CustomerID, 10)
		}, nil
	default: // dto.GroupByChannel
		ids := make([]uint64, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ChannelID)
		}
		names, err := s.dirDao.ChannelNames(ids)
		if err != nil {
			return nil, err
		}
		return func(r model.SettleDaily) string {
			if n, ok := names[r.ChannelID]; ok {
				return n
			}
			return strconv.FormatUint(r.ChannelID, 10)
		}, nil
	}
}

// Overview 某月三个结算族的总量概览
func (s *ReportService) Overview(month string) (*dto.OverviewResult, error) {
	if _, err := timeutil.ParseMonth(month, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidMonth).WithDetail(month)
	}

	res := &dto.OverviewResult{Month: month, CommissionTotal: decimal.Zero}

	daily, err := s.dailyDao.ListByMonth(month)
	if err != nil {
		return nil, err
	}
	res.Daily = newOverviewFamily()
	for _, r := range daily {
		res.Daily.Count++
		res.Daily.TotalCost = res.Daily.TotalCost.Add(r.TotalCost)
		res.Daily.TotalRevenue = res.Daily.TotalRevenue.Add(r.TotalRevenue)
		res.Daily.TotalProfit = res.Daily.TotalProfit.Add(r.TotalProfit)
		res.Daily.StatusCounts[r.Status]++
	}

	agents, err := s.agentDao.ListByMonth(month)
	if err != nil {
		return nil, err
	}
	res.Agent = newOverviewFamily()
	for _, r := range agents {
		res.Agent.Count++
		res.Agent.TotalCost = res.Agent.TotalCost.Add(r.TotalCost)
		res.Agent.TotalRevenue = res.Agent.TotalRevenue.Add(r.TotalRevenue)
		res.Agent.TotalProfit = res.Agent.TotalProfit.Add(r.TotalProfit)
		res.Agent.StatusCounts[r.Status]++
		res.CommissionTotal = res.CommissionTotal.Add(r.CommissionAmount)
	}

	channels, err := s.channelDao.ListByMonth(month)
	if err != nil {
		return nil, err
	}
	res.Channel = newOverviewFamily()
	for _, r := range channels {
		res.Channel.Count++
		res.Channel.TotalCost = res.Channel.TotalCost.Add(r.TotalCost)
		res.Channel.StatusCounts[r.Status]++
	}

	return res, nil
}

func newOverviewFamily() dto.OverviewFamily {
	return dto.OverviewFamily{
		TotalCost:    decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
		StatusCounts: make(map[string]int),
	}
}
