package service

import (
	"time"

	"github.com/shopspring/decimal"

	"sms-settle-api/internal/config"
)

// 金额保留 4 位小数，比率（百分数）保留 2 位
const (
	moneyScale = 4
	rateScale  = 2
)

var oneHundred = decimal.NewFromInt(100)

// settleLoc 结算所用时区，配置缺失或非法时退回进程本地时区
func settleLoc() *time.Location {
	tz := config.C.Settle.Timezone
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

// percent 计算 part/total*100，total 为 0 时返回 0
func percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(oneHundred).Div(total).Round(rateScale)
}

// percentOfCount 计数版本的 percent
func percentOfCount(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(oneHundred).
		Div(decimal.NewFromInt(int64(total))).Round(rateScale)
}

// avgPrice 计算平均单价，count 为 0 时返回 0
func avgPrice(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(moneyScale)
}
