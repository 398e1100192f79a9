package constant

// 系统级错误码
const (
	CodeSuccess       = 200
	CodeSystemError   = 500
	CodeDatabaseError = 501
)

// 参数校验错误码 (1xxx)，此类错误直接拒绝，不会重试
const (
	CodeInvalidDate    = 1001 // 日期格式错误，要求 YYYY-MM-DD
	CodeInvalidMonth   = 1002 // 月份格式错误，要求 YYYY-MM
	CodeInvalidRange   = 1003 // 日期区间无效，开始日期晚于结束日期
	CodeInvalidGroupBy = 1004 // 报表分组维度无效
	CodeInvalidParam   = 1005 // 请求参数无效
)

// 冲突类错误码 (2xxx)，需要显式走重新结算入口，防止静默重复计费
const (
	CodeAlreadySettled  = 2001 // 该周期已结算完成，如需重算请使用重新结算接口
	CodePaidImmutable   = 2002 // 已支付的结算单不可删除或重算
	CodeStatusConflict  = 2003 // 结算单当前状态不允许该操作
	CodeSettleNotFound  = 2004 // 结算单不存在
)

// 结算运行期错误码 (3xxx)
const (
	CodeSettleFailed   = 3001 // 结算失败，事务已回滚
	CodeAgentNotFound  = 3002 // 代理不存在
	CodeChannelMissing = 3003 // 通道不存在
)
