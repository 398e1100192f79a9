package dto

import (
	"github.com/shopspring/decimal"
)

// 报表分组维度
const (
	GroupByDate     = "date"
	GroupByCustomer = "customer"
	GroupByChannel  = "channel"
	GroupByCountry  = "country"
)

type ReportReq struct {
	StartDate  string `form:"start_date" json:"start_date" binding:"required"`
	EndDate    string `form:"end_date" json:"end_date" binding:"required"`
	CustomerID uint64 `form:"customer_id" json:"customer_id"` // 0 表示不过滤
	ChannelID  uint64 `form:"channel_id" json:"channel_id"`
	Country    string `form:"country" json:"country"`
	GroupBy    string `form:"group_by" json:"group_by"`
}

type ReportGroup struct {
	GroupKey     string          `json:"group_key"`
	TotalCount   int             `json:"total_count"`
	SuccessCount int             `json:"success_count"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

type ReportSummary struct {
	TotalCount   int             `json:"total_count"`
	SuccessCount int             `json:"success_count"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	ProfitRate   string          `json:"profit_rate"` // 如 "23.50%"，收入为 0 时固定 "0%"
}

type ReportResult struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	GroupBy   string        `json:"group_by"`
	Groups    []ReportGroup `json:"groups"`
	Summary   ReportSummary `json:"summary"`
}

// OverviewFamily 概览中单个结算族的汇总
type OverviewFamily struct {
	Count        int             `json:"count"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalRevenue decimal.Decimal `json:"total_revenue,omitempty"`
	TotalProfit  decimal.Decimal `json:"total_profit,omitempty"`
	StatusCounts map[string]int  `json:"status_counts"`
}

type OverviewResult struct {
	Month           string          `json:"month"`
	Daily           OverviewFamily  `json:"daily"`
	Agent           OverviewFamily  `json:"agent"`
	Channel         OverviewFamily  `json:"channel"`
	CommissionTotal decimal.Decimal `json:"commission_total"`
}
