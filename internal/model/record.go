package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SmsRecord 原始发送记录（由接收链路写入，本系统只读）
type SmsRecord struct {
	ID         uint64          `gorm:"column:id;primaryKey" json:"id"`
	CustomerID uint64          `gorm:"column:customer_id;not null;index" json:"customer_id"`
	ChannelID  uint64          `gorm:"column:channel_id;not null;index" json:"channel_id"`
	AgentID    uint64          `gorm:"column:agent_id;not null;index" json:"agent_id"`
	Country    string          `gorm:"column:country;size:8;not null" json:"country"`
	Phone      string          `gorm:"column:phone;size:20;not null" json:"phone"`
	Status     string          `gorm:"column:status;size:10;not null;index" json:"status"`
	CostPrice  decimal.Decimal `gorm:"column:cost_price;type:decimal(18,4);not null;default:0" json:"cost_price"`
	SalePrice  decimal.Decimal `gorm:"column:sale_price;type:decimal(18,4);not null;default:0" json:"sale_price"`
	SendTime   time.Time       `gorm:"column:send_time;not null;index" json:"send_time"`
}

func (SmsRecord) TableName() string { return "sms_record" }

// Customer 客户目录（只读）
type Customer struct {
	ID      uint64 `gorm:"column:id;primaryKey" json:"id"`
	Name    string `gorm:"column:name;size:64;not null" json:"name"`
	AgentID uint64 `gorm:"column:agent_id;not null;index" json:"agent_id"`
	Status  int8   `gorm:"column:status;not null;default:1" json:"status"`
}

func (Customer) TableName() string { return "sms_customer" }

// Agent 代理目录（只读），commission_rate 为当前佣金比例（百分数）
type Agent struct {
	ID             uint64          `gorm:"column:id;primaryKey" json:"id"`
	Name           string          `gorm:"column:name;size:64;not null" json:"name"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2);not null;default:0" json:"commission_rate"`
	Status         int8            `gorm:"column:status;not null;default:1" json:"status"`
}

func (Agent) TableName() string { return "sms_agent" }

// Channel 通道目录（只读）
type Channel struct {
	ID     uint64 `gorm:"column:id;primaryKey" json:"id"`
	Name   string `gorm:"column:name;size:64;not null" json:"name"`
	Status int8   `gorm:"column:status;not null;default:1" json:"status"`
}

func (Channel) TableName() string { return "sms_channel" }
