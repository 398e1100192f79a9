package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleAgentMonth 代理月度结算汇总表
//
// 粒度 (agent_id, settle_month)，提交口径：当月该代理名下客户的
// 全部发送记录计入营收与佣金，不论发送结果。
// commission_rate 为结算时点的快照，后续调整代理费率不影响已出账单。
type SettleAgentMonth struct {
	ID               uint64          `gorm:"column:id;primaryKey" json:"id"`
	AgentID          uint64          `gorm:"column:agent_id;not null;uniqueIndex:uk_agent_month,priority:1" json:"agent_id"`
	SettleMonth      string          `gorm:"column:settle_month;size:7;not null;uniqueIndex:uk_agent_month,priority:2" json:"settle_month"`
	TotalSubmitted   int             `gorm:"column:total_submitted;not null;default:0" json:"total_submitted"`
	TotalSuccess     int             `gorm:"column:total_success;not null;default:0" json:"total_success"`
	TotalFailed      int             `gorm:"column:total_failed;not null;default:0" json:"total_failed"`
	SuccessRate      decimal.Decimal `gorm:"column:success_rate;type:decimal(5,2);not null;default:0" json:"success_rate"`
	TotalRevenue     decimal.Decimal `gorm:"column:total_revenue;type:decimal(18,4);not null;default:0" json:"total_revenue"`
	TotalCost        decimal.Decimal `gorm:"column:total_cost;type:decimal(18,4);not null;default:0" json:"total_cost"`
	TotalProfit      decimal.Decimal `gorm:"column:total_profit;type:decimal(18,4);not null;default:0" json:"total_profit"`
	ProfitRate       decimal.Decimal `gorm:"column:profit_rate;type:decimal(5,2);not null;default:0" json:"profit_rate"`
	CommissionRate   decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2);not null;default:0" json:"commission_rate"`
	CommissionAmount decimal.Decimal `gorm:"column:commission_amount;type:decimal(18,4);not null;default:0" json:"commission_amount"`
	CustomerCount    int             `gorm:"column:customer_count;not null;default:0" json:"customer_count"`
	Status           string          `gorm:"column:status;size:12;not null;default:pending" json:"status"`
	SettleTime       *time.Time      `gorm:"column:settle_time" json:"settle_time"`
	PaymentTime      *time.Time      `gorm:"column:payment_time" json:"payment_time"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (SettleAgentMonth) TableName() string { return "settle_agent_month" }

// SettleAgentMonthDetail 代理月度结算明细，一条明细对应一个客户
type SettleAgentMonthDetail struct {
	ID           uint64          `gorm:"column:id;primaryKey" json:"id"`
	SettleID     uint64          `gorm:"column:settle_id;not null;index" json:"settle_id"`
	CustomerID   uint64          `gorm:"column:customer_id;not null" json:"customer_id"`
	CustomerName string          `gorm:"column:customer_name;size:64;not null" json:"customer_name"`
	Submitted    int             `gorm:"column:submitted;not null;default:0" json:"submitted"`
	Success      int             `gorm:"column:success;not null;default:0" json:"success"`
	Failed       int             `gorm:"column:failed;not null;default:0" json:"failed"`
	Revenue      decimal.Decimal `gorm:"column:revenue;type:decimal(18,4);not null;default:0" json:"revenue"`
	Cost         decimal.Decimal `gorm:"column:cost;type:decimal(18,4);not null;default:0" json:"cost"`
	Profit       decimal.Decimal `gorm:"column:profit;type:decimal(18,4);not null;default:0" json:"profit"`
}

func (SettleAgentMonthDetail) TableName() string { return "settle_agent_month_detail" }
