package timeutil

import (
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseDate 解析日期 YYYY-MM-DD，按给定时区
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseMonth 解析月份 YYYY-MM，按给定时区
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, s, loc)
}

// DayRange 返回某日的半开区间 [当日 00:00:00, 次日 00:00:00)
func DayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// MonthRange 返回某月的半开区间 [本月1日, 次月1日)
func MonthRange(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return start, start.AddDate(0, 1, 0)
}

// PrevDay 返回 t 所在时区的前一天日期串
func PrevDay(t time.Time) string {
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// PrevMonth 返回 t 所在时区的上一个月份串
func PrevMonth(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, -1, 0).Format(MonthLayout)
}
