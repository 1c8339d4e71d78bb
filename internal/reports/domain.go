// Package reports serves cached aggregate views over sales, expenses and
// payroll.
package reports

import (
	"fmt"
	"time"

	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
)

// Period is the bucket width of the summary chart.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod defaults to day and rejects unknown widths.
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(raw); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", httpx.Validation("period must be one of: day, week, month, year")
	}
}

// window returns the start of the oldest bucket shown for p: seven days,
// four weeks, twelve months or five years including the current one.
func (p Period) window(now time.Time) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodWeek:
		monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		return monday.AddDate(0, 0, -7*3)
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	case PeriodYear:
		return time.Date(y-4, 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return day.AddDate(0, 0, -6)
	}
}

// label renders a bucket start for the chart axis.
func (p Period) label(t time.Time) string {
	switch p {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("Week %d, %d", week, year)
	case PeriodMonth:
		return t.Format("Jan 2006")
	case PeriodYear:
		return t.Format("2006")
	default:
		return t.Format("Jan 02")
	}
}

// ChartPoint is one bucket of the summary chart.
type ChartPoint struct {
	Date     string  `json:"date"`
	Sales    float64 `json:"sales"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// Totals are all-time sums. TotalPayroll is present for roles allowed to see
// salary figures only.
type Totals struct {
	TotalSales    float64  `json:"totalSales"`
	TotalExpenses float64  `json:"totalExpenses"`
	TotalProfit   float64  `json:"totalProfit"`
	TotalPayroll  *float64 `json:"totalPayroll,omitempty"`
}

// Summary is the /reports/summary body.
type Summary struct {
	ChartData []ChartPoint `json:"chartData"`
	Summary   Totals       `json:"summary"`
	Role      string       `json:"role"`
}

// PaymentDay is one day of the payment-method chart.
type PaymentDay struct {
	Date     string  `json:"date"`
	Cash     float64 `json:"cash"`
	Transfer float64 `json:"transfer"`
}

// PaymentTotals sums collected amounts per payment method.
type PaymentTotals struct {
	CashTotal     float64 `json:"cashTotal"`
	TransferTotal float64 `json:"transferTotal"`
}

// PaymentMethods is the /reports/payment-methods body.
type PaymentMethods struct {
	Summary   PaymentTotals `json:"summary"`
	ChartData []PaymentDay  `json:"chartData"`
	Role      string        `json:"role"`
}

// Bucket is a raw aggregate row.
type Bucket struct {
	Start    time.Time
	Sales    float64
	Expenses float64
}
