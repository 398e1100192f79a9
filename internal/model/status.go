package model

// 发送记录状态
const (
	RecordStatusPending = "pending"
	RecordStatusSending = "sending"
	RecordStatusSuccess = "success"
	RecordStatusFailed  = "failed"
)

// 结算单状态机：pending → processing → completed → paid / cancelled
// paid 与 cancelled 为终态，paid 不可删除、不可重算
const (
	SettleStatusPending    = "pending"
	SettleStatusProcessing = "processing"
	SettleStatusCompleted  = "completed"
	SettleStatusFailed     = "failed"
	SettleStatusPaid       = "paid"
	SettleStatusCancelled  = "cancelled"
)
