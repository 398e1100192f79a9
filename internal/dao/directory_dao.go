package dao

import (
	"errors"

	"gorm.io/gorm"

	"sms-settle-api/internal/dal"
	"sms-settle-api/internal/model"
)

// DirectoryDao 客户/代理/通道目录查询，全部只读
type DirectoryDao struct{}

func (d *DirectoryDao) GetAgent(id uint64) (*model.Agent, error) {
	var a model.Agent
	if err := dal.MainDB.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (d *DirectoryDao) GetChannel(id uint64) (*model.Channel, error) {
	var c model.Channel
	if err := dal.MainDB.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (d *DirectoryDao) ListActiveAgents() ([]model.Agent, error) {
	var list []model.Agent
	err := dal.MainDB.Where("status = ?", 1).Order("id").Find(&list).Error
	return list, err
}

func (d *DirectoryDao) ListActiveChannels() ([]model.Channel, error) {
	var list []model.Channel
	err := dal.MainDB.Where("status = ?", 1).Order("id").Find(&list).Error
	return list, err
}

// ListActiveCustomers 查询代理名下启用客户
func (d *DirectoryDao) ListActiveCustomers(agentID uint64) ([]model.Customer, error) {
	var list []model.Customer
	err := dal.MainDB.Where("agent_id = ? AND status = ?", agentID, 1).Order("id").Find(&list).Error
	return list, err
}

// CustomerNames 批量取客户名称，供报表与导出拼接
func (d *DirectoryDao) CustomerNames(ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []model.Customer
	if err := dal.MainDB.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c.Name
	}
	return out, nil
}

// ChannelNames 批量取通道名称
func (d *DirectoryDao) ChannelNames(ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []model.Channel
	if err := dal.MainDB.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c.Name
	}
	return out, nil
}
