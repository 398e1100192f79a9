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

// ChannelSettleService 通道月度成本结算。
//
// 成功口径：只有成功记录计入成本与明细；全量提交数仅用于成功率。
// 不指定国家时按数据中出现的国家扇出，一个通道一个事务。
type ChannelSettleService struct {
	recordDao  *dao.RecordDao
	dirDao     *dao.DirectoryDao
	channelDao *dao.ChannelSettleDao
	loc        *time.Location
}

func NewChannelSettleService() *ChannelSettleService {
	return &ChannelSettleService{
		recordDao:  &dao.RecordDao{},
		dirDao:     &dao.DirectoryDao{},
		channelDao: &dao.ChannelSettleDao{},
		loc:        settleLoc(),
	}
}

// Settle 结算单个通道；country 为空时按国家扇出。
// 返回 nil 且无错误表示当月无记录，未落行。
func (s *ChannelSettleService) Settle(channelID uint64, month, country string) ([]model.SettleChannelMonth, error) {
	list, reason, err := s.settle(channelID, month, country, false)
	if err != nil {
		return nil, err
	}
	if list == nil {
		log.Printf("[CHANNEL-SETTLE] 通道 %d %s 跳过: %s", channelID, month, reason)
	}
	return list, nil
}

// Resettle 显式重新结算入口；paid 的分组仍然拒绝
func (s *ChannelSettleService) Resettle(channelID uint64, month, country string) ([]model.SettleChannelMonth, error) {
	list, reason, err := s.settle(channelID, month, country, true)
	if err != nil {
		return nil, err
	}
	if list == nil {
		log.Printf("[CHANNEL-SETTLE] 通道 %d %s 重算跳过: %s", channelID, month, reason)
	}
	return list, nil
}

func (s *ChannelSettleService) settle(channelID uint64, month, country string, force bool) ([]model.SettleChannelMonth, string, error) {
	mon, err := timeutil.ParseMonth(month, s.loc)
	if err != nil {
		return nil, "", constant.NewError(constant.CodeInvalidMonth).WithDetail(month)
	}

	channel, err := s.dirDao.GetChannel(channelID)
	if err != nil {
		return nil, "", err
	}
	if channel == nil {
		return nil, "", constant.NewError(constant.CodeChannelMissing)
	}

	// 已出账单守卫，粒度为 (通道,月份,国家)
	existing, err := s.existingForGuard(channelID, month, country)
	if err != nil {
		return nil, "", err
	}
	for _, e := range existing {
		if e.Status == model.SettleStatusPaid {
			return nil, "", constant.NewError(constant.CodePaidImmutable)
		}
		if !force && settledOrLater(e.Status) {
			return nil, "", constant.NewError(constant.CodeAlreadySettled)
		}
	}

	start, end := timeutil.MonthRange(mon)
	records, err := s.recordDao.ListByChannelBetween(channelID, country, start, end)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "当月无发送记录", nil
	}

	groups := buildChannelGroups(channelID, month, country, records)
	if err := s.channelDao.ReplaceForChannel(groups); err != nil {
		return nil, "", err
	}

	out := make([]model.SettleChannelMonth, 0, len(groups))
	countries := make([]string, 0, len(groups))
	totalCost := decimal.Zero
	for _, g := range groups {
		out = append(out, g.Summary)
		countries = append(countries, g.Summary.Country)
		totalCost = totalCost.Add(g.Summary.TotalCost)
	}
	_ = mq.PublishChannelSettled(mq.ChannelSettledEvent{
		ChannelID: channelID,
		Month:     month,
		Countries: countries,
		TotalCost: totalCost.String(),
		SettledAt: time.Now().Unix(),
	})
	log.Printf("[CHANNEL-SETTLE] 通道 %d %s 完成: %d 个国家 成本 %s",
		channelID, month, len(groups), totalCost)
	return out, "", nil
}

func (s *ChannelSettleService) existingForGuard(channelID uint64, month, country string) ([]model.SettleChannelMonth, error) {
	if country != "" {
		one, err := s.channelDao.GetByKey(channelID, month, country)
		if err != nil {
			return nil, err
		}
		if one == nil {
			return nil, nil
		}
		return []model.SettleChannelMonth{*one}, nil
	}
	return s.channelDao.ListByChannelMonth(channelID, month)
}

// buildChannelGroups 按国家分组。扇出模式下只为有成功记录的国家出账；
// 指定国家时即使无成功记录也出一条零成本账单。
func buildChannelGroups(channelID uint64, month, country string, records []model.SmsRecord) []dao.ChannelGroup {
	submittedByCountry := make(map[string]int)
	successByCountry := make(map[string][]model.SmsRecord)
	for _, r := range records {
		submittedByCountry[r.Country]++
		if r.Status == model.RecordStatusSuccess {
			successByCountry[r.Country] = append(successByCountry[r.Country], r)
		}
	}

	var countries []string
	if country != "" {
		countries = []string{country}
	} else {
		for c := range successByCountry {
			countries = append(countries, c)
		}
		sort.Strings(countries)
	}

	now := time.Now()
	groups := make([]dao.ChannelGroup, 0, len(countries))
	for _, c := range countries {
		success := successByCountry[c]
		totalCost := decimal.Zero
		details := make([]model.SettleChannelMonthDetail, 0, len(success))
		for _, r := range success {
			totalCost = totalCost.Add(r.CostPrice)
			details = append(details, model.SettleChannelMonthDetail{
				RecordID:  r.ID,
				Phone:     r.Phone,
				CostPrice: r.CostPrice,
				SendTime:  r.SendTime,
			})
		}
		settleTime := now
		groups = append(groups, dao.ChannelGroup{
			Summary: model.SettleChannelMonth{
				ChannelID:      channelID,
				SettleMonth:    month,
				Country:        c,
				TotalSuccess:   len(success),
				TotalSubmitted: submittedByCountry[c],
				SuccessRate:    percentOfCount(len(success), submittedByCountry[c]),
				TotalCost:      totalCost,
				AvgCostPrice:   avgPrice(totalCost, len(success)),
				Status:         model.SettleStatusCompleted,
				SettleTime:     &settleTime,
			},
			Details: details,
		})
	}
	return groups
}

// AutoSettleAll 结算全部启用通道，逐个串行处理，批次永远整体返回
func (s *ChannelSettleService) AutoSettleAll(month string) (*dto.ChannelBatchResult, error) {
	if _, err := timeutil.ParseMonth(month, s.loc); err != nil {
		return nil, constant.NewError(constant.CodeInvalidMonth).WithDetail(month)
	}
	channels, err := s.dirDao.ListActiveChannels()
	if err != nil {
		return nil, err
	}

	res := &dto.ChannelBatchResult{Month: month}
	batch.ForEach(channels, func(c model.Channel) error {
		list, reason, err := s.settle(c.ID, month, "", false)
		if err != nil {
			return err
		}
		if list == nil {
			res.Skipped = append(res.Skipped, dto.BatchSkippedItem{EntityID: c.ID, Reason: reason})
			return nil
		}
		res.Success = append(res.Success, list...)
		return nil
	}, func(c model.Channel, err error) {
		log.Printf("[CHANNEL-SETTLE] 通道 %d %s 失败: %v", c.ID, month, err)
		res.Failed = append(res.Failed, dto.BatchFailedItem{EntityID: c.ID, Error: err.Error()})
	})
	return res, nil
}

// MarkPaid 账单支付确认：completed → paid
func (s *ChannelSettleService) MarkPaid(id uint64) error {
	return s.channelDao.MarkPaid(id, time.Now())
}

// Delete 删除账单（含明细）；paid 不可删除
func (s *ChannelSettleService) Delete(id uint64) error {
	return s.channelDao.DeleteByID(id)
}
