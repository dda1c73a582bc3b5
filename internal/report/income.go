// Package report derives the admin income statement from two
// independently keyed collections: sales and the non-sale ledger.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"greenbytes/internal/domain"
)

// MonthlyRow is one income-statement row for a calendar month.
type MonthlyRow struct {
	Month       string  `json:"month"` // e.g. "Jan 2025"
	Sales       float64 `json:"sales"`
	Donations   float64 `json:"donations"`
	Investments float64 `json:"investments"`
}

type monthlyAcc struct {
	sales       decimal.Decimal
	donations   decimal.Decimal
	investments decimal.Decimal
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseMonth(date string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// MonthlyIncome merges sales totals with donation and investment ledger
// entries into one row per calendar month, sorted chronologically. A
// month present in only one source still appears with zeros elsewhere;
// a month absent from both never appears. Sales without a product
// reference or a parseable date are skipped, matching what the console
// is willing to chart.
func MonthlyIncome(sales []domain.Sale, entries []domain.LedgerEntry) []MonthlyRow {
	months := make(map[time.Time]*monthlyAcc)

	acc := func(key time.Time) *monthlyAcc {
		a, ok := months[key]
		if !ok {
			a = &monthlyAcc{
				sales:       decimal.Zero,
				donations:   decimal.Zero,
				investments: decimal.Zero,
			}
			months[key] = a
		}
		return a
	}

	for _, s := range sales {
		if s.ProductID == "" {
			continue
		}
		key, ok := parseMonth(s.Date)
		if !ok {
			continue
		}
		a := acc(key)
		a.sales = a.sales.Add(decimal.NewFromFloat(s.Total))
	}

	for _, e := range entries {
		key, ok := parseMonth(e.Date)
		if !ok {
			continue
		}
		a := acc(key)
		amount := decimal.NewFromFloat(e.Amount)
		switch e.Source {
		case domain.SourceDonation:
			a.donations = a.donations.Add(amount)
		case domain.SourceInvestment:
			a.investments = a.investments.Add(amount)
		}
	}

	keys := make([]time.Time, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]MonthlyRow, 0, len(keys))
	for _, k := range keys {
		a := months[k]
		out = append(out, MonthlyRow{
			Month:       k.Format("Jan 2006"),
			Sales:       a.sales.Round(2).InexactFloat64(),
			Donations:   a.donations.Round(2).InexactFloat64(),
			Investments: a.investments.Round(2).InexactFloat64(),
		})
	}
	return out
}
