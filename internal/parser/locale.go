package parser

import "strings"

// Locale 报表语言的日期词汇表
//
// Veeam 报表按安装语言输出日期（波兰语报表形如
// "środa, 14 lutego 2024 21:00:00"），解析前先把月份和星期词
// 替换成英文，再交给 time.Parse。词汇表之外的词原样保留。
type Locale struct {
	Code     string
	Months   map[string]string
	Weekdays map[string]string
}

var localeEN = &Locale{Code: "en"}

var localePL = &Locale{
	Code: "pl",
	Months: map[string]string{
		"stycznia":     "January",
		"lutego":       "February",
		"marca":        "March",
		"kwietnia":     "April",
		"maja":         "May",
		"czerwca":      "June",
		"lipca":        "July",
		"sierpnia":     "August",
		"września":     "September",
		"października": "October",
		"listopada":    "November",
		"grudnia":      "December",
	},
	Weekdays: map[string]string{
		"poniedziałek": "Monday",
		"wtorek":       "Tuesday",
		"środa":        "Wednesday",
		"czwartek":     "Thursday",
		"piątek":       "Friday",
		"sobota":       "Saturday",
		"niedziela":    "Sunday",
	},
}

// LocaleFor 按语言码返回词汇表，未知语言码当作英文处理
func LocaleFor(code string) *Locale {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "pl":
		return localePL
	default:
		return localeEN
	}
}

// NormalizeMonths 把文本中的本地语言月份替换成英文
func (l *Locale) NormalizeMonths(s string) string {
	return replaceTokens(s, l.Months)
}

// NormalizeWeekdays 把文本中的本地语言星期替换成英文
func (l *Locale) NormalizeWeekdays(s string) string {
	return replaceTokens(s, l.Weekdays)
}

// Normalize 同时替换月份和星期
func (l *Locale) Normalize(s string) string {
	return l.NormalizeWeekdays(l.NormalizeMonths(s))
}

func replaceTokens(s string, vocab map[string]string) string {
	for from, to := range vocab {
		s = strings.ReplaceAll(s, from, to)
	}
	return s
}
