package dao

import (
	"errors"

	"gorm.io/gorm"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/idgen"
	"sms-settle-api/internal/model"
)

// DailyGroup 一个 (日期,客户,通道,国家) 分组的汇总与明细，整体替换单元
type DailyGroup struct {
	Summary model.SettleDaily
	Details []model.SettleDailyDetail
}

type DailyDao struct{}

// ReplaceForDate 在单个事务内替换整日的全部分组：
// 任何一组失败则整日回滚，不提交部分分组。
func (d *DailyDao) ReplaceForDate(groups []DailyGroup) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		for i := range groups {
			if err := replaceDailyGroup(tx, &groups[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// replaceDailyGroup 按唯一键 upsert 汇总行，删除旧明细后整批重建。
// 汇总行已存在时保留原 id 与 created_at，保证重算幂等。
func replaceDailyGroup(tx *gorm.DB, g *DailyGroup) error {
	var existing model.SettleDaily
	err := tx.Where("settle_date = ? AND customer_id = ? AND channel_id = ? AND country = ?",
		g.Summary.SettleDate, g.Summary.CustomerID, g.Summary.ChannelID, g.Summary.Country).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		// 整体替换：沿用原 id 与 created_at，汇总行删后重建
		g.Summary.ID = existing.ID
		g.Summary.CreatedAt = existing.CreatedAt
		if err := tx.Delete(&model.SettleDaily{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
	} else {
		g.Summary.ID = idgen.New()
	}
	if err := tx.Create(&g.Summary).Error; err != nil {
		return err
	}
	if err := tx.Where("settle_id = ?", g.Summary.ID).Delete(&model.SettleDailyDetail{}).Error; err != nil {
		return err
	}
	for i := range g.Details {
		g.Details[i].ID = idgen.New()
		g.Details[i].SettleID = g.Summary.ID
	}
	if len(g.Details) == 0 {
		return nil
	}
	return tx.CreateInBatches(g.Details, 500).Error
}

func (d *DailyDao) GetByKey(date string, customerID, channelID uint64, country string) (*model.SettleDaily, error) {
	var m model.SettleDaily
	err := dal.MainDB.Where("settle_date = ? AND customer_id = ? AND channel_id = ? AND country = ?",
		date, customerID, channelID, country).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (d *DailyDao) GetByID(id uint64) (*model.SettleDaily, error) {
	var m model.SettleDaily
	if err := dal.MainDB.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (d *DailyDao) ListDetails(settleID uint64) ([]model.SettleDailyDetail, error) {
	var list []model.SettleDailyDetail
	err := dal.MainDB.Where("settle_id = ?", settleID).Order("record_id").Find(&list).Error
	return list, err
}

// ListCompleted 查询区间内已完成的日结算汇总，报表与导出共用。
// customerID/channelID 传 0、country 传空串表示不过滤。
func (d *DailyDao) ListCompleted(startDate, endDate string, customerID, channelID uint64, country string) ([]model.SettleDaily, error) {
	q := dal.MainDB.
		Where("settle_date >= ? AND settle_date <= ?", startDate, endDate).
		Where("status = ?", model.SettleStatusCompleted)
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	if channelID != 0 {
		q = q.Where("channel_id = ?", channelID)
	}
	if country != "" {
		q = q.Where("country = ?", country)
	}
	var list []model.SettleDaily
	err := q.Order("settle_date, customer_id, channel_id, country").Find(&list).Error
	return list, err
}

// ListByMonth 查询某月全部日结算汇总（概览用）
func (d *DailyDao) ListByMonth(month string) ([]model.SettleDaily, error) {
	var list []model.SettleDaily
	err := dal.MainDB.Where("settle_date LIKE ?", month+"%").Find(&list).Error
	return list, err
}

// DeleteByID 删除汇总及其全部明细。processing 状态拒绝删除，
// 避免删掉一个正在重算途中的结算单。
func (d *DailyDao) DeleteByID(id uint64) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var m model.SettleDaily
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodeSettleNotFound)
			}
			return err
		}
		if m.Status == model.SettleStatusProcessing {
			return constant.NewError(constant.CodeStatusConflict)
		}
		if err := tx.Where("settle_id = ?", id).Delete(&model.SettleDailyDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SettleDaily{}, "id = ?", id).Error
	})
}
