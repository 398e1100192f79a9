package dao

import (
	"time"

	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/model"
)

// RecordDao 原始发送记录查询，全部只读
type RecordDao struct{}

// ListSuccessBetween 查询时间区间内全部成功记录（日结算口径）
func (r *RecordDao) ListSuccessBetween(start, end time.Time) ([]model.SmsRecord, error) {
	var list []model.SmsRecord
	err := dal.MainDB.
		Where("status = ?", model.RecordStatusSuccess).
		Where("send_time >= ? AND send_time < ?", start, end).
		Order("id").
		Find(&list).Error
	return list, err
}

// ListByCustomersBetween 查询一批客户在区间内的全部记录，不区分状态（代理提交口径）
func (r *RecordDao) ListByCustomersBetween(customerIDs []uint64, start, end time.Time) ([]model.SmsRecord, error) {
	var list []model.SmsRecord
	err := dal.MainDB.
		Where("customer_id IN ?", customerIDs).
		Where("send_time >= ? AND send_time < ?", start, end).
		Order("id").
		Find(&list).Error
	return list, err
}

// ListByChannelBetween 查询通道在区间内的全部记录，不区分状态；country 为空不过滤。
// 成功/提交的拆分由调用方完成，一次查询同时服务成本与成功率两种口径。
func (r *RecordDao) ListByChannelBetween(channelID uint64, country string, start, end time.Time) ([]model.SmsRecord, error) {
	var list []model.SmsRecord
	q := dal.MainDB.
		Where("channel_id = ?", channelID).
		Where("send_time >= ? AND send_time < ?", start, end)
	if country != "" {
		q = q.Where("country = ?", country)
	}
	err := q.Order("id").Find(&list).Error
	return list, err
}
