package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleChannelMonth 通道月度成本结算汇总表
//
// 粒度 (channel_id, settle_month, country)，成功口径：
// 只有 status=success 的记录计成本，total_submitted 仅用于成功率。
type SettleChannelMonth struct {
	ID             uint64          `gorm:"column:id;primaryKey" json:"id"`
	ChannelID      uint64          `gorm:"column:channel_id;not null;uniqueIndex:uk_channel_month,priority:1" json:"channel_id"`
	SettleMonth    string          `gorm:"column:settle_month;size:7;not null;uniqueIndex:uk_channel_month,priority:2" json:"settle_month"`
	Country        string          `gorm:"column:country;size:8;not null;uniqueIndex:uk_channel_month,priority:3" json:"country"`
	TotalSuccess   int             `gorm:"column:total_success;not null;default:0" json:"total_success"`
	TotalSubmitted int             `gorm:"column:total_submitted;not null;default:0" json:"total_submitted"`
	SuccessRate    decimal.Decimal `gorm:"column:success_rate;type:decimal(5,2);not null;default:0" json:"success_rate"`
	TotalCost      decimal.Decimal `gorm:"column:total_cost;type:decimal(18,4);not null;default:0" json:"total_cost"`
	AvgCostPrice   decimal.Decimal `gorm:"column:avg_cost_price;type:decimal(18,4);not null;default:0" json:"avg_cost_price"`
	Status         string          `gorm:"column:status;size:12;not null;default:pending" json:"status"`
	SettleTime     *time.Time      `gorm:"column:settle_time" json:"settle_time"`
	PaymentTime    *time.Time      `gorm:"column:payment_time" json:"payment_time"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (SettleChannelMonth) TableName() string { return "settle_channel_month" }

// SettleChannelMonthDetail 通道月度结算明细，一条明细对应一条成功记录
type SettleChannelMonthDetail struct {
	ID        uint64          `gorm:"column:id;primaryKey" json:"id"`
	SettleID  uint64          `gorm:"column:settle_id;not null;index" json:"settle_id"`
	RecordID  uint64          `gorm:"column:record_id;not null" json:"record_id"`
	Phone     string          `gorm:"column:phone;size:20;not null" json:"phone"`
	CostPrice decimal.Decimal `gorm:"column:cost_price;type:decimal(18,4);not null;default:0" json:"cost_price"`
	SendTime  time.Time       `gorm:"column:send_time;not null" json:"send_time"`
}

func (SettleChannelMonthDetail) TableName() string { return "settle_channel_month_detail" }
