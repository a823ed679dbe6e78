package portfolio

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/SscSPs/portfolio_tracker/internal/apperrors"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(n int) time.Time { return dates.AddDays(dates.New(2024, time.January, 1), n-1) }

func buy(account, symbol string, d int, qty, price, net string) domain.Activity {
	return domain.Activity{
		AccountID: account, TradeDate: day(d), Type: domain.ActivityTypeBuy,
		Security: ptr(symbol), Cash: ptr("CAD"),
		Quantity: dec(qty), Price: dec(price), NetAmount: dec(net),
	}
}

func sell(account, symbol string, d int, qty, price, net string) domain.Activity {
	a := buy(account, symbol, d, qty, price, net)
	a.Type = domain.ActivityTypeSell
	return a
}

func deposit(account string, d int, amount string) domain.Activity {
	return domain.Activity{AccountID: account, TradeDate: day(d), Type: domain.ActivityTypeDeposit, Cash: ptr("CAD"), NetAmount: dec(amount)}
}

func intervalsFor(all []domain.HoldingInterval, account, symbol string) []domain.HoldingInterval {
	var out []domain.HoldingInterval
	for _, h := range all {
		if h.AccountID == account && h.Symbol == symbol {
			out = append(out, h)
		}
	}
	return out
}

func assertInterval(t *testing.T, h domain.HoldingInterval, qty string, start int, end *int) {
	t.Helper()
	assert.True(t, dec(qty).Equal(h.Quantity), "quantity: want %s got %s", qty, h.Quantity)
	assert.Equal(t, day(start), h.StartDate)
	if end == nil {
		assert.Nil(t, h.EndDate)
		return
	}
	require.NotNil(t, h.EndDate)
	assert.Equal(t, day(*end), *h.EndDate)
}

func TestReconstructHoldings_BuySellExit(t *testing.T) {
	activities := []domain.Activity{
		sell("A", "XIU.TO", 10, "-50", "12", "595"),
		deposit("A", 1, "2000"),
		buy("A", "XIU.TO", 1, "100", "10", "-1005"),
		sell("A", "XIU.TO", 5, "-50", "12", "595"),
	}

	got, err := ReconstructHoldings(activities)
	require.NoError(t, err)

	xiu := intervalsFor(got, "A", "XIU.TO")
	require.Len(t, xiu, 2)
	assertInterval(t, xiu[0], "100", 1, ptr(4))
	assertInterval(t, xiu[1], "50", 5, ptr(9))

	cad := intervalsFor(got, "A", "CAD")
	require.Len(t, cad, 3)
	assertInterval(t, cad[0], "995", 1, ptr(4))
	assertInterval(t, cad[1], "1590", 5, ptr(9))
	assertInterval(t, cad[2], "2185", 10, nil)
}

func TestReconstructHoldings_SameDayEffectsMerge(t *testing.T) {
	got, err := ReconstructHoldings([]domain.Activity{
		buy("A", "VFV.TO", 3, "10", "100", "-1000"),
		buy("A", "VFV.TO", 3, "5", "100", "-500"),
	})
	require.NoError(t, err)

	vfv := intervalsFor(got, "A", "VFV.TO")
	require.Len(t, vfv, 1)
	assertInterval(t, vfv[0], "15", 3, nil)
}

func TestReconstructHoldings_SameDayRoundTripLeavesNothing(t *testing.T) {
	got, err := ReconstructHoldings([]domain.Activity{
		buy("A", "SHOP.TO", 3, "10", "100", "-1000"),
		sell("A", "SHOP.TO", 3, "-10", "100", "1000"),
	})
	require.NoError(t, err)
	assert.Empty(t, intervalsFor(got, "A", "SHOP.TO"))
	assert.Empty(t, intervalsFor(got, "A", "CAD"))
}

func TestReconstructHoldings_ShortPosition(t *testing.T) {
	got, err := ReconstructHoldings([]domain.Activity{
		sell("A", "TSLA", 2, "-10", "200", "2000"),
		buy("A", "TSLA", 6, "10", "180", "-1800"),
	})
	require.NoError(t, err)

	tsla := intervalsFor(got, "A", "TSLA")
	require.Len(t, tsla, 1)
	assertInterval(t, tsla[0], "-10", 2, ptr(5))
}

func TestReconstructHoldings_AccountsAreSeparate(t *testing.T) {
	got, err := ReconstructHoldings([]domain.Activity{
		buy("A", "XIU.TO", 1, "10", "30", "-300"),
		buy("B", "XIU.TO", 2, "20", "30", "-600"),
	})
	require.NoError(t, err)
	require.Len(t, intervalsFor(got, "A", "XIU.TO"), 1)
	require.Len(t, intervalsFor(got, "B", "XIU.TO"), 1)
	assert.Equal(t, "A", got[0].AccountID)
}

func TestReconstructHoldings_Idempotent(t *testing.T) {
	activities := randomActivities(rand.New(rand.NewPCG(7, 11)), 200)

	first, err := ReconstructHoldings(activities)
	require.NoError(t, err)
	second, err := ReconstructHoldings(activities)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReconstructHoldings_QuantityConservation(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		activities := randomActivities(rand.New(rand.NewPCG(seed, seed*31)), 150)
		intervals, err := ReconstructHoldings(activities)
		require.NoError(t, err)

		for _, account := range []string{"A", "B"} {
			for _, symbol := range []string{"XIU.TO", "VFV.TO", "CAD"} {
				running := decimal.Zero
				for d := 1; d <= 70; d++ {
					for _, a := range activities {
						if a.AccountID != account || !a.TradeDate.Equal(day(d)) {
							continue
						}
						effects, err := a.HoldingEffects()
						require.NoError(t, err)
						running = running.Add(effects[symbol])
					}
					got := decimal.Zero
					for _, h := range HoldingsOn(intervals, day(d)) {
						if h.AccountID == account && h.Symbol == symbol {
							got = got.Add(h.Quantity)
						}
					}
					require.True(t, running.Equal(got), "seed %d %s/%s day %d: want %s got %s", seed, account, symbol, d, running, got)
				}
			}
		}
	}
}

func TestReconstructHoldings_NonOverlapping(t *testing.T) {
	intervals, err := ReconstructHoldings(randomActivities(rand.New(rand.NewPCG(3, 5)), 300))
	require.NoError(t, err)

	byKey := make(map[HoldingKey][]domain.HoldingInterval)
	for _, h := range intervals {
		key := HoldingKey{h.AccountID, h.Symbol}
		byKey[key] = append(byKey[key], h)
	}
	for key, timeline := range byKey {
		open := 0
		for i, h := range timeline {
			assert.False(t, h.Quantity.IsZero(), key.String())
			if h.IsOpen() {
				open++
				assert.Equal(t, len(timeline)-1, i, "only the last interval may be open for %s", key)
			}
			if i > 0 {
				require.NotNil(t, timeline[i-1].EndDate)
				assert.True(t, timeline[i-1].EndDate.Before(h.StartDate), key.String())
			}
		}
		assert.LessOrEqual(t, open, 1, key.String())
	}
}

func TestExtendHoldings_ContinuesStoredTimeline(t *testing.T) {
	existing := []domain.HoldingInterval{
		{AccountID: "A", Symbol: "XIU.TO", Quantity: dec("100"), StartDate: day(1)},
	}
	got, err := ExtendHoldings(existing, []domain.Activity{
		{AccountID: "A", TradeDate: day(5), Type: domain.ActivityTypeJournal, Security: ptr("XIU.TO"), Quantity: dec("-100")},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assertInterval(t, got[0], "100", 1, ptr(4))
	assert.True(t, existing[0].IsOpen(), "input must not be mutated")
}

func TestExtendHoldings_IntegrityIsolatedPerKey(t *testing.T) {
	existing := []domain.HoldingInterval{
		{AccountID: "A", Symbol: "XIU.TO", Quantity: dec("100"), StartDate: day(1)},
		{AccountID: "A", Symbol: "XIU.TO", Quantity: dec("50"), StartDate: day(3)},
	}
	got, err := ExtendHoldings(existing, []domain.Activity{
		buy("A", "XIU.TO", 5, "10", "30", "-300"),
		deposit("A", 5, "300"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, HoldingKey{"A", "XIU.TO"}, integrity.Key)
	assert.Equal(t, day(3), integrity.Day)

	assert.Empty(t, intervalsFor(got, "A", "XIU.TO"))
	assert.Empty(t, intervalsFor(got, "A", "CAD"), "buy and deposit cancel out on the cash side")
}

func TestExtendHoldings_PredatingActivity(t *testing.T) {
	existing := []domain.HoldingInterval{
		{AccountID: "A", Symbol: "XIU.TO", Quantity: dec("100"), StartDate: day(10)},
	}
	got, err := ExtendHoldings(existing, []domain.Activity{
		buy("A", "XIU.TO", 4, "10", "30", "-300"),
		buy("A", "VFV.TO", 4, "1", "100", "-100"),
	})
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
	assert.Len(t, intervalsFor(got, "A", "VFV.TO"), 1)
	assert.Len(t, intervalsFor(got, "A", "CAD"), 1)
}

func TestReconstructHoldings_UnmappedType(t *testing.T) {
	_, err := ReconstructHoldings([]domain.Activity{{AccountID: "A", TradeDate: day(1), Type: "Merger"}})
	assert.ErrorIs(t, err, apperrors.ErrUnmappedActivityType)
}

func randomActivities(r *rand.Rand, n int) []domain.Activity {
	accounts := []string{"A", "B"}
	symbols := []string{"XIU.TO", "VFV.TO"}
	out := make([]domain.Activity, 0, n)
	for range n {
		account := accounts[r.IntN(len(accounts))]
		d := 1 + r.IntN(60)
		qty := decimal.NewFromInt(int64(r.IntN(21) - 10))
		price := decimal.NewFromInt(int64(10 + r.IntN(5)))
		switch r.IntN(4) {
		case 0:
			out = append(out, deposit(account, d, decimal.NewFromInt(int64(r.IntN(500))).String()))
		case 1:
			out = append(out, domain.Activity{AccountID: account, TradeDate: day(d), Type: domain.ActivityTypeDividend,
				Security: ptr(symbols[r.IntN(2)]), Cash: ptr("CAD"), Quantity: qty, NetAmount: dec("1.5")})
		default:
			net := qty.Mul(price).Neg()
			out = append(out, buy(account, symbols[r.IntN(2)], d, qty.String(), price.String(), net.String()))
		}
	}
	return out
}
