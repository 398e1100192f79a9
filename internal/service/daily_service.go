package service

import (
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"sms-settle-api/internal/batch"
	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dao"
	"sms-settle-api/internal/dto"
	"sms-settle-api/internal/model"
	"sms-settle-api/internal/mq"
	"sms-settle-api/internal/utils/timeutil"
)

// DailySettleService 日结算：按 (日期,客户,通道,国家) 聚合当日成功记录。
// 重算采用整体替换，对同一日期重复调用结果幂等。
type DailySettleService struct {
	recordDao *dao.RecordDao
	dailyDao  *dao.DailyDao
	loc       *time.Location
}

func NewDailySettleService() *DailySettleService {
	return &DailySettleService{
		recordDao: &dao.RecordDao{},
		dailyDao:  &dao.DailyDao{},
		loc:       settleLoc(),
	}
}

type dailyKey struct {
	customerID uint64
	channelID  uint64
	country    string
}

// SettleDate 结算指定日期（YYYY-MM-DD）。
// 当日无成功记录时直接成功返回，不落任何行。
// 整日在单个事务内提交，任何分组失败则整日回滚。
func (s *DailySettleService) SettleDate(date string) (*dto.DailySettleResult, error) {
	day, err := timeutil.ParseDate(date, s.loc)
	if err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(date)
	}
	start, end := timeutil.DayRange(day)

	records, err := s.recordDao.ListSuccessBetween(start, end)
	if err != nil {
		return nil, err
	}
	res := &dto.DailySettleResult{Date: date, Settlements: []model.SettleDaily{}}
	if len(records) == 0 {
		log.Printf("[DAILY-SETTLE] %s 无成功记录，跳过", date)
		return res, nil
	}

	groups := s.buildGroups(date, records)
	if err := s.dailyDao.ReplaceForDate(groups); err != nil {
		return nil, err
	}

	for _, g := range groups {
		res.Settlements = append(res.Settlements, g.Summary)
	}
	res.GroupCount = len(groups)
	res.RecordCount = len(records)

	_ = mq.PublishDailySettled(mq.DailySettledEvent{
		Date:        date,
		GroupCount:  res.GroupCount,
		RecordCount: res.RecordCount,
		SettledAt:   time.Now().Unix(),
	})
	log.Printf("[DAILY-SETTLE] %s 完成: %d 组 %d 条记录", date, res.GroupCount, res.RecordCount)
	return res, nil
}

// buildGroups 按 (客户,通道,国家) 分组并计算汇总，分组按键排序保证输出稳定
func (s *DailySettleService) buildGroups(date string, records []model.SmsRecord) []dao.DailyGroup {
	byKey := make(map[dailyKey][]model.SmsRecord)
	for _, r := range records {
		k := dailyKey{customerID: r.CustomerID, channelID: r.ChannelID, country: r.Country}
		byKey[k] = append(byKey[k], r)
	}
	keys := make([]dailyKey, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.customerID != b.customerID {
			return a.customerID < b.customerID
		}
		if a.channelID != b.channelID {
			return a.channelID < b.channelID
		}
		return a.country < b.country
	})

	groups := make([]dao.DailyGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, buildDailyGroup(date, k, byKey[k]))
	}
	return groups
}

func buildDailyGroup(date string, k dailyKey, records []model.SmsRecord) dao.DailyGroup {
	totalCost := decimal.Zero
	totalRevenue := decimal.Zero
	details := make([]model.SettleDailyDetail, 0, len(records))
	for _, r := range records {
		totalCost = totalCost.Add(r.CostPrice)
		totalRevenue = totalRevenue.Add(r.SalePrice)
		details = append(details, model.SettleDailyDetail{
			RecordID: r.ID,
			Cost:     r.CostPrice,
			Revenue:  r.SalePrice,
			Profit:   r.SalePrice.Sub(r.CostPrice),
			Status:   r.Status,
			SendTime: r.SendTime,
		})
	}
	n := len(records)
	return dao.DailyGroup{
		Summary: model.SettleDaily{
			SettleDate:   date,
			CustomerID:   k.customerID,
			ChannelID:    k.channelID,
			Country:      k.country,
			TotalCount:   n,
			SuccessCount: n, // 日结算只取成功记录
			FailedCount:  0,
			TotalCost:    totalCost,
			TotalRevenue: totalRevenue,
			TotalProfit:  totalRevenue.Sub(totalCost),
			CostPrice:    avgPrice(totalCost, n),
			SalePrice:    avgPrice(totalRevenue, n),
			Status:       model.SettleStatusCompleted,
		},
		Details: details,
	}
}

// SettleRange 按日期区间批量重算，逐日处理；单日失败记入 Failed，
// 不中断其余日期。
func (s *DailySettleService) SettleRange(startDate, endDate string) (*dto.DailyBatchResult, error) {
	start, err := timeutil.ParseDate(startDate, s.loc)
	if err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(startDate)
	}
	end, err := timeutil.ParseDate(endDate, s.loc)
	if err != nil {
		return nil, constant.NewError(constant.CodeInvalidDate).WithDetail(endDate)
	}
	if start.After(end) {
		return nil, constant.NewError(constant.CodeInvalidRange)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(timeutil.DateLayout))
	}

	res := &dto.DailyBatchResult{StartDate: startDate, EndDate: endDate}
	batch.ForEach(dates, func(date string) error {
		one, err := s.SettleDate(date)
		if err != nil {
			return err
		}
		res.Success = append(res.Success, *one)
		return nil
	}, func(date string, err error) {
		log.Printf("[DAILY-SETTLE] %s 失败: %v", date, err)
		res.Failed = append(res.Failed, dto.BatchFailedItem{Date: date, Error: err.Error()})
	})
	return res, nil
}

// Delete 删除单个日结算（含明细）；结算中的不允许删除
func (s *DailySettleService) Delete(id uint64) error {
	return s.dailyDao.DeleteByID(id)
}
