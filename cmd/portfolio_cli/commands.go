package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/adapters/brokers"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/renderer"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/google/subcommands"
)

// regenerateCmd holds the flags for the 'regenerate' subcommand.
type regenerateCmd struct {
	account string
}

func (*regenerateCmd) Name() string     { return "regenerate" }
func (*regenerateCmd) Synopsis() string { return "rebuild activities, holdings and cost basis" }
func (*regenerateCmd) Usage() string {
	return `regenerate [-account <id>]

  Rebuilds derived data from raw broker records, for one account or for all of them.
`
}

func (c *regenerateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID. Defaults to every account.")
}

func (c *regenerateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var results []domain.RegenerationResult
	if c.account != "" {
		result, err := a.services.Portfolio.RegenerateAccount(ctx, c.account)
		if err != nil {
			fail("Error regenerating %s: %v", c.account, err)
			return subcommands.ExitFailure
		}
		results = append(results, *result)
	} else {
		results, err = a.services.Portfolio.RegenerateAll(ctx)
		if err != nil {
			printMarkdown(renderer.RegenerationMarkdown(results))
			fail("Some accounts failed: %v", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.RegenerationMarkdown(results))
	return subcommands.ExitSuccess
}

// syncPricesCmd holds the flags for the 'sync-prices' subcommand.
type syncPricesCmd struct {
	symbol string
	start  string
	end    string
}

func (*syncPricesCmd) Name() string     { return "sync-prices" }
func (*syncPricesCmd) Synopsis() string { return "merge price sources into daily prices" }
func (*syncPricesCmd) Usage() string {
	return `sync-prices [-symbol <symbol> [-s <day>] [-d <day>]]

  Without a symbol, brings every security up to today.
`
}

func (c *syncPricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Security to sync. Defaults to every security.")
	f.StringVar(&c.start, "s", domain.DefaultAccountCreationDate.Format(dates.Format), "First day (YYYY-MM-DD)")
	f.StringVar(&c.end, "d", "", "Last day (YYYY-MM-DD). Defaults to today.")
}

func (c *syncPricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := dates.Parse(c.start)
	if err != nil {
		fail("Error parsing start date: %v", err)
		return subcommands.ExitUsageError
	}
	end := dates.Today()
	if c.end != "" {
		if end, err = dates.Parse(c.end); err != nil {
			fail("Error parsing end date: %v", err)
			return subcommands.ExitUsageError
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.symbol == "" {
		if err := a.services.Price.SyncAll(ctx); err != nil {
			fail("Price sync finished with errors: %v", err)
			return subcommands.ExitFailure
		}
		fmt.Println("All securities synced.")
		return subcommands.ExitSuccess
	}

	symbol := strings.ToUpper(c.symbol)
	days, err := a.services.Price.SyncPrices(ctx, symbol, start, end)
	if err != nil {
		fail("Error syncing %s: %v", symbol, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %d days written.\n", symbol, days)
	return subcommands.ExitSuccess
}

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	user string
	day  string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print a portfolio report" }
func (*reportCmd) Usage() string {
	return `report -user <username> [-d <day>] capital-gains|realized-gains|commissions|valuation

  Prints a report of the user's accounts in the reporting currency.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Username whose accounts are reported")
	f.StringVar(&c.day, "d", "", "Valuation day (YYYY-MM-DD). Defaults to today.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" || f.NArg() != 1 {
		fail("%s", c.Usage())
		return subcommands.ExitUsageError
	}
	day := dates.Today()
	if c.day != "" {
		var err error
		if day, err = dates.Parse(c.day); err != nil {
			fail("Error parsing day: %v", err)
			return subcommands.ExitUsageError
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("Error opening database: %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	user, err := a.services.User.GetUserByUsername(ctx, c.user)
	if err != nil {
		fail("Error loading user %q: %v", c.user, err)
		return subcommands.ExitFailure
	}

	md, err := c.render(ctx, a, f.Arg(0), user.UserID, day)
	if err != nil {
		fail("Error generating report: %v", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func (c *reportCmd) render(ctx context.Context, a *app, kind, userID string, day time.Time) (string, error) {
	currency := a.cfg.ReportingCurrency
	reports := a.services.Reporting
	switch kind {
	case "capital-gains":
		rows, err := reports.CapitalGainSummary(ctx, userID)
		if err != nil {
			return "", err
		}
		return renderer.CapitalGainsMarkdown(rows, currency), nil
	case "realized-gains":
		gains, err := reports.RealizedGainsByYear(ctx, userID)
		if err != nil {
			return "", err
		}
		return renderer.RealizedGainsMarkdown(gains, currency), nil
	case "commissions":
		amounts, err := reports.CommissionsByYear(ctx, userID)
		if err != nil {
			return "", err
		}
		return renderer.CommissionsMarkdown(amounts, currency), nil
	case "valuation":
		v, err := reports.Valuation(ctx, userID, day)
		if err != nil {
			return "", err
		}
		return renderer.ValuationMarkdown(v, currency), nil
	}
	return "", fmt.Errorf("unknown report %q", kind)
}

// brokersCmd lists the broker adapters this build knows.
type brokersCmd struct{}

func (*brokersCmd) Name() string             { return "brokers" }
func (*brokersCmd) Synopsis() string         { return "list known broker adapters" }
func (*brokersCmd) Usage() string            { return "brokers\n" }
func (*brokersCmd) SetFlags(_ *flag.FlagSet) {}

func (*brokersCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, name := range brokers.KnownBrokers() {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}
