package dao

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"sms-settle-api/internal/constant"
	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/idgen"
	"sms-settle-api/internal/model"
)

// ChannelGroup 一个 (通道,月份,国家) 分组的汇总与明细，整体替换单元
type ChannelGroup struct {
	Summary model.SettleChannelMonth
	Details []model.SettleChannelMonthDetail
}

type ChannelSettleDao struct{}

func (d *ChannelSettleDao) GetByKey(channelID uint64, month, country string) (*model.SettleChannelMonth, error) {
	var m model.SettleChannelMonth
	err := dal.MainDB.Where("channel_id = ? AND settle_month = ? AND country = ?",
		channelID, month, country).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (d *ChannelSettleDao) GetByID(id uint64) (*model.SettleChannelMonth, error) {
	var m model.SettleChannelMonth
	if err := dal.MainDB.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (d *ChannelSettleDao) ListDetails(settleID uint64) ([]model.SettleChannelMonthDetail, error) {
	var list []model.SettleChannelMonthDetail
	err := dal.MainDB.Where("settle_id = ?", settleID).Order("record_id").Find(&list).Error
	return list, err
}

func (d *ChannelSettleDao) ListByChannelMonth(channelID uint64, month string) ([]model.SettleChannelMonth, error) {
	var list []model.SettleChannelMonth
	err := dal.MainDB.Where("channel_id = ? AND settle_month = ?", channelID, month).
		Order("country").Find(&list).Error
	return list, err
}

func (d *ChannelSettleDao) ListByMonth(month string) ([]model.SettleChannelMonth, error) {
	var list []model.SettleChannelMonth
	err := dal.MainDB.Where("settle_month = ?", month).Order("channel_id, country").Find(&list).Error
	return list, err
}

// ReplaceForChannel 单事务内替换一个通道当月全部国家分组：
// 一个通道的结算要么整体提交要么整体回滚。
func (d *ChannelSettleDao) ReplaceForChannel(groups []ChannelGroup) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		for i := range groups {
			if err := replaceChannelGroup(tx, &groups[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func replaceChannelGroup(tx *gorm.DB, g *ChannelGroup) error {
	var existing model.SettleChannelMonth
	err := tx.Where("channel_id = ? AND settle_month = ? AND country = ?",
		g.Summary.ChannelID, g.Summary.SettleMonth, g.Summary.Country).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		// 整体替换：沿用原 id 与 created_at，汇总行删后重建
		g.Summary.ID = existing.ID
		g.Summary.CreatedAt = existing.CreatedAt
		if err := tx.Delete(&model.SettleChannelMonth{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
	} else {
		g.Summary.ID = idgen.New()
	}
	if err := tx.Create(&g.Summary).Error; err != nil {
		return err
	}
	if err := tx.Where("settle_id = ?", g.Summary.ID).Delete(&model.SettleChannelMonthDetail{}).Error; err != nil {
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

// MarkPaid completed → paid，其余状态拒绝
func (d *ChannelSettleDao) MarkPaid(id uint64, paidAt time.Time) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var m model.SettleChannelMonth
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodeSettleNotFound)
			}
			return err
		}
		if m.Status != model.SettleStatusCompleted {
			return constant.NewError(constant.CodeStatusConflict)
		}
		return tx.Model(&model.SettleChannelMonth{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":       model.SettleStatusPaid,
				"payment_time": paidAt,
			}).Error
	})
}

// DeleteByID 删除汇总及明细；paid 不可删除
func (d *ChannelSettleDao) DeleteByID(id uint64) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var m model.SettleChannelMonth
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodeSettleNotFound)
			}
			return err
		}
		if m.Status == model.SettleStatusPaid {
			return constant.NewError(constant.CodePaidImmutable)
		}
		if err := tx.Where("settle_id = ?", id).Delete(&model.SettleChannelMonthDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SettleChannelMonth{}, "id = ?", id).Error
	})
}
