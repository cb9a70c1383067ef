package util

import "time"

// DayStart 取 t 在指定时区的当天零点。日界线统一由服务端时钟
// 和业务时区决定，不使用客户端日期。
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween 两个日期相差的天数（按各自所在时区的日历日计算）
func DaysBetween(from, to time.Time, loc *time.Location) int {
	a := DayStart(from, loc)
	b := DayStart(to, loc)
	return int(b.Sub(a).Hours() / 24)
}
