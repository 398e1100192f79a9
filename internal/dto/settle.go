package dto

import (
	"sms-settle-api/internal/model"
)

// ===== 请求 =====

type DailySettleReq struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type DailyRangeReq struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type AgentSettleReq struct {
	AgentID uint64 `json:"agent_id"` // 0 表示全部代理
	Month   string `json:"month" binding:"required"`
}

type ChannelSettleReq struct {
	ChannelID uint64 `json:"channel_id"` // 0 表示全部通道
	Month     string `json:"month" binding:"required"`
	Country   string `json:"country"` // 可选，空表示按数据中的国家扇出
}

type AgentResettleReq struct {
	AgentID uint64 `json:"agent_id" binding:"required"`
	Month   string `json:"month" binding:"required"`
}

type ChannelResettleReq struct {
	ChannelID uint64 `json:"channel_id" binding:"required"`
	Month     string `json:"month" binding:"required"`
	Country   string `json:"country"`
}

type MonthReq struct {
	Month string `json:"month" binding:"required"`
}

type MonthCountryReq struct {
	Month   string `json:"month" binding:"required"`
	Country string `json:"country"`
}

// ===== 单实体结果 =====

// DailySettleResult 单日结算结果，Settlements 按分组键排序
type DailySettleResult struct {
	Date        string              `json:"date"`
	GroupCount  int                 `json:"group_count"`
	RecordCount int                 `json:"record_count"`
	Settlements []model.SettleDaily `json:"settlements"`
}

// ===== 批量结果 =====
// 批量调用永远整体成功返回，单个实体的失败进入 Failed 列表

type BatchFailedItem struct {
	EntityID uint64 `json:"entity_id,omitempty"`
	Date     string `json:"date,omitempty"`
	Error    string `json:"error"`
}

type BatchSkippedItem struct {
	EntityID uint64 `json:"entity_id"`
	Reason   string `json:"reason"`
}

type AgentBatchResult struct {
	Month   string                   `json:"month"`
	Success []model.SettleAgentMonth `json:"success"`
	Failed  []BatchFailedItem        `json:"failed"`
	Skipped []BatchSkippedItem       `json:"skipped"`
}

type ChannelBatchResult struct {
	Month   string                     `json:"month"`
	Success []model.SettleChannelMonth `json:"success"`
	Failed  []BatchFailedItem          `json:"failed"`
	Skipped []BatchSkippedItem         `json:"skipped"`
}

type DailyBatchResult struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Success   []DailySettleResult `json:"success"`
	Failed    []BatchFailedItem   `json:"failed"`
}
