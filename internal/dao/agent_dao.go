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

type AgentSettleDao struct{}

func (d *AgentSettleDao) GetByKey(agentID uint64, month string) (*model.SettleAgentMonth, error) {
	var m model.SettleAgentMonth
	err := dal.MainDB.Where("agent_id = ? AND settle_month = ?", agentID, month).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (d *AgentSettleDao) GetByID(id uint64) (*model.SettleAgentMonth, error) {
	var m model.SettleAgentMonth
	if err := dal.MainDB.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (d *AgentSettleDao) ListDetails(settleID uint64) ([]model.SettleAgentMonthDetail, error) {
	var list []model.SettleAgentMonthDetail
	err := dal.MainDB.Where("settle_id = ?", settleID).Order("customer_id").Find(&list).Error
	return list, err
}

func (d *AgentSettleDao) ListByMonth(month string) ([]model.SettleAgentMonth, error) {
	var list []model.SettleAgentMonth
	err := dal.MainDB.Where("settle_month = ?", month).Order("agent_id").Find(&list).Error
	return list, err
}

// Replace 按唯一键 upsert 汇总行并整批重建明细，单事务。
// 已存在时沿用原 id 与 created_at。
func (d *AgentSettleDao) Replace(summary *model.SettleAgentMonth, details []model.SettleAgentMonthDetail) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var existing model.SettleAgentMonth
		err := tx.Where("agent_id = ? AND settle_month = ?", summary.AgentID, summary.SettleMonth).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			// 整体替换：沿用原 id 与 created_at，汇总行删后重建
			summary.ID = existing.ID
			summary.CreatedAt = existing.CreatedAt
			if err := tx.Delete(&model.SettleAgentMonth{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		} else {
			summary.ID = idgen.New()
		}
		if err := tx.Create(summary).Error; err != nil {
			return err
		}
		if err := tx.Where("settle_id = ?", summary.ID).Delete(&model.SettleAgentMonthDetail{}).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].ID = idgen.New()
			details[i].SettleID = summary.ID
		}
		if len(details) == 0 {
			return nil
		}
		return tx.CreateInBatches(details, 500).Error
	})
}

// MarkPaid completed → paid，其余状态拒绝；状态检查与更新同一事务
func (d *AgentSettleDao) MarkPaid(id uint64, paidAt time.Time) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var m model.SettleAgentMonth
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodeSettleNotFound)
			}
			return err
		}
		if m.Status != model.SettleStatusCompleted {
			return constant.NewError(constant.CodeStatusConflict)
		}
		return tx.Model(&model.SettleAgentMonth{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":       model.SettleStatusPaid,
				"payment_time": paidAt,
			}).Error
	})
}

// DeleteByID 删除汇总及明细；paid 不可删除
func (d *AgentSettleDao) DeleteByID(id uint64) error {
	return dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var m model.SettleAgentMonth
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return constant.NewError(constant.CodeSettleNotFound)
			}
			return err
		}
		if m.Status == model.SettleStatusPaid {
			return constant.NewError(constant.CodePaidImmutable)
		}
		if err := tx.Where("settle_id = ?", id).Delete(&model.SettleAgentMonthDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SettleAgentMonth{}, "id = ?", id).Error
	})
}
