// Package renderer turns reports into markdown for the command line.
package renderer

import (
	"fmt"
	"strings"

	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// CapitalGainsMarkdown renders open positions of taxable accounts. Rows without a market
// price show a dash; rows needing attention are marked and their issues listed below.
func CapitalGainsMarkdown(rows []domain.CapitalGainSummaryRow, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Capital Gains\n\n")
	if len(rows) == 0 {
		fmt.Fprint(&b, "No open positions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Quantity | Book Value | Price | Market Value | Pending Gain | % |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	var (
		book, market, pending decimal.Decimal
		notes                 []string
	)
	for _, r := range rows {
		book = book.Add(r.BookValue)
		symbol := r.Symbol
		if r.NeedsAttention {
			symbol += attentionMark
			notes = append(notes, fmt.Sprintf("- **%s**: %s", r.Symbol, r.Issue))
		}
		if r.Price.IsZero() {
			fmt.Fprintf(&b, "| %s | %s | %s | - | - | - | - |\n", symbol, r.Quantity.String(), utils.FormatMoney(r.BookValue, currency))
			continue
		}
		market = market.Add(r.MarketValue)
		pending = pending.Add(r.PendingGain)
		pct := "-"
		if r.PercentGain != nil {
			pct = r.PercentGain.StringFixed(2) + "%"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			symbol,
			r.Quantity.String(),
			utils.FormatMoney(r.BookValue, currency),
			utils.FormatMoney(r.Price, currency),
			utils.FormatMoney(r.MarketValue, currency),
			utils.FormatMoney(r.PendingGain, currency),
			pct,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | | **%s** | **%s** | |\n",
		utils.FormatMoney(book, currency),
		utils.FormatMoney(market, currency),
		utils.FormatMoney(pending, currency),
	)
	writeNotes(&b, notes)
	return b.String()
}

const attentionMark = " (!)"

func writeNotes(b *strings.Builder, notes []string) {
	if len(notes) == 0 {
		return
	}
	fmt.Fprint(b, "\n## Needs Attention\n\n")
	for _, n := range notes {
		fmt.Fprintln(b, n)
	}
}

// RealizedGainsMarkdown renders realized gains grouped by year with a subtotal per year.
func RealizedGainsMarkdown(gains []domain.RealizedGain, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Realized Gains\n\n")
	if len(gains) == 0 {
		fmt.Fprint(&b, "No dispositions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Year | Security | Gain |")
	fmt.Fprintln(&b, "|:---|:---|---:|")
	year, subtotal := gains[0].Year, decimal.Zero
	var notes []string
	for _, g := range gains {
		if g.Year != year {
			fmt.Fprintf(&b, "| **%d** | | **%s** |\n", year, utils.FormatMoney(subtotal, currency))
			year, subtotal = g.Year, decimal.Zero
		}
		subtotal = subtotal.Add(g.Gain)
		symbol := g.Symbol
		if g.NeedsAttention {
			symbol += attentionMark
			notes = append(notes, fmt.Sprintf("- **%d %s**: %s", g.Year, g.Symbol, g.Issue))
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", g.Year, symbol, utils.FormatMoney(g.Gain, currency))
	}
	fmt.Fprintf(&b, "| **%d** | | **%s** |\n", year, utils.FormatMoney(subtotal, currency))
	writeNotes(&b, notes)
	return b.String()
}

// CommissionsMarkdown renders commissions paid per year.
func CommissionsMarkdown(amounts []domain.YearAmount, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Commissions\n\n")
	fmt.Fprintln(&b, "| Year | Commissions |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, a := range amounts {
		fmt.Fprintf(&b, "| %d | %s |\n", a.Year, utils.FormatMoney(a.Amount, currency))
	}
	return b.String()
}

// ValuationMarkdown renders every position held on the valuation day.
func ValuationMarkdown(v *domain.Valuation, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Valuation on %s\n\n", v.Day.Format(dates.Format))
	fmt.Fprintln(&b, "| Account | Security | Quantity | Price | Rate | Value |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
	for _, r := range v.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			r.AccountID, r.Symbol, r.Quantity.String(), r.Price.String(), r.ExchangeRate.String(),
			utils.FormatMoney(r.Value, currency))
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** |\n", utils.FormatMoney(v.Total, currency))
	return b.String()
}

// RegenerationMarkdown summarizes regenerated accounts and lists their issues.
func RegenerationMarkdown(results []domain.RegenerationResult) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Regeneration\n\n")
	fmt.Fprintln(&b, "| Account | Activities | Holding Intervals | Cost Basis Records | Issues |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	var issues []domain.RegenerationIssue
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d |\n", r.AccountID, r.Activities, r.HoldingIntervals, r.CostBasisRecords, len(r.Issues))
		issues = append(issues, r.Issues...)
	}
	if len(issues) == 0 {
		return b.String()
	}

	fmt.Fprint(&b, "\n## Issues\n\n")
	for _, i := range issues {
		fmt.Fprintf(&b, "- **%s** %s (%s): %s\n", i.AccountID, i.Symbol, i.Stage, i.Message)
	}
	return b.String()
}
