package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:       {"操作成功", "Success"},
	CodeSystemError:   {"系统错误", "System error"},
	CodeDatabaseError: {"数据库错误", "Database error"},

	// 参数校验错误
	CodeInvalidDate:    {"日期格式错误", "Invalid date, expected YYYY-MM-DD"},
	CodeInvalidMonth:   {"月份格式错误", "Invalid month, expected YYYY-MM"},
	CodeInvalidRange:   {"日期区间无效", "Invalid date range"},
	CodeInvalidGroupBy: {"分组维度无效", "Invalid group-by dimension"},
	CodeInvalidParam:   {"请求参数无效", "Invalid request parameter"},

	// 冲突类错误
	CodeAlreadySettled: {"该周期已结算，请使用重新结算接口", "Already settled, use the re-settle endpoint"},
	CodePaidImmutable:  {"已支付结算单不可变更", "Paid settlement is immutable"},
	CodeStatusConflict: {"结算单状态不允许该操作", "Settlement status conflict"},
	CodeSettleNotFound: {"结算单不存在", "Settlement not found"},

	// 结算运行期错误
	CodeSettleFailed:   {"结算失败", "Settlement failed"},
	CodeAgentNotFound:  {"代理不存在", "Agent not found"},
	CodeChannelMissing: {"通道不存在", "Channel not found"},
}
