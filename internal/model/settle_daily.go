package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleDaily 日结算汇总表
//
// 粒度 (settle_date, customer_id, channel_id, country)，成功口径：
// 只统计 status=success 的记录。派生数据，可随时整体重算。
type SettleDaily struct {
	ID           uint64          `gorm:"column:id;primaryKey" json:"id"`
	SettleDate   string          `gorm:"column:settle_date;size:10;not null;uniqueIndex:uk_daily,priority:1" json:"settle_date"`
	CustomerID   uint64          `gorm:"column:customer_id;not null;uniqueIndex:uk_daily,priority:2" json:"customer_id"`
	ChannelID    uint64          `gorm:"column:channel_id;not null;uniqueIndex:uk_daily,priority:3" json:"channel_id"`
	Country      string          `gorm:"column:country;size:8;not null;uniqueIndex:uk_daily,priority:4" json:"country"`
	TotalCount   int             `gorm:"column:total_count;not null;default:0" json:"total_count"`
	SuccessCount int             `gorm:"column:success_count;not null;default:0" json:"success_count"`
	FailedCount  int             `gorm:"column:failed_count;not null;default:0" json:"failed_count"`
	TotalCost    decimal.Decimal `gorm:"column:total_cost;type:decimal(18,4);not null;default:0" json:"total_cost"`
	TotalRevenue decimal.Decimal `gorm:"column:total_revenue;type:decimal(18,4);not null;default:0" json:"total_revenue"`
	TotalProfit  decimal.Decimal `gorm:"column:total_profit;type:decimal(18,4);not null;default:0" json:"total_profit"`
	CostPrice    decimal.Decimal `gorm:"column:cost_price;type:decimal(18,4);not null;default:0" json:"cost_price"` // 平均成本价
	SalePrice    decimal.Decimal `gorm:"column:sale_price;type:decimal(18,4);not null;default:0" json:"sale_price"` // 平均销售价
	Status       string          `gorm:"column:status;size:12;not null;default:pending" json:"status"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (SettleDaily) TableName() string { return "settle_daily" }

// SettleDailyDetail 日结算明细，一条明细对应一条原始记录
type SettleDailyDetail struct {
	ID       uint64          `gorm:"column:id;primaryKey" json:"id"`
	SettleID uint64          `gorm:"column:settle_id;not null;index" json:"settle_id"`
	RecordID uint64          `gorm:"column:record_id;not null" json:"record_id"`
	Cost     decimal.Decimal `gorm:"column:cost;type:decimal(18,4);not null;default:0" json:"cost"`
	Revenue  decimal.Decimal `gorm:"column:revenue;type:decimal(18,4);not null;default:0" json:"revenue"`
	Profit   decimal.Decimal `gorm:"column:profit;type:decimal(18,4);not null;default:0" json:"profit"`
	Status   string          `gorm:"column:status;size:10;not null" json:"status"`
	SendTime time.Time       `gorm:"column:send_time;not null" json:"send_time"`
}

func (SettleDailyDetail) TableName() string { return "settle_daily_detail" }
