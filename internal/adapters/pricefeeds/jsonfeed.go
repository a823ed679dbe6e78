package pricefeeds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/SscSPs/portfolio_tracker/internal/core/domain"
	"github.com/SscSPs/portfolio_tracker/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// maxFeedBody bounds the document a feed may return.
const maxFeedBody = 8 << 20

// JSONFeed downloads a JSON document and reads two parallel arrays from it with
// JSONPath: one of days, one of prices. The URL may contain {symbol}, {start} and
// {end} placeholders, filled with the query escaped symbol and days.
type JSONFeed struct {
	source domain.PriceSource
	client *http.Client
}

func (j *JSONFeed) Priority() int { return j.source.Priority }

func (j *JSONFeed) Observations(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceObservation, error) {
	if symbolMismatch(j.source, symbol) {
		return nil, nil
	}
	from, to, ok := window(j.source, start, end)
	if !ok {
		return nil, nil
	}

	addr := strings.NewReplacer(
		"{symbol}", url.QueryEscape(j.source.Symbol),
		"{start}", from.Format(dates.Format),
		"{end}", to.Format(dates.Format),
	).Replace(j.source.URL)

	var doc any
	if err := j.get(ctx, addr, &doc); err != nil {
		return nil, fmt.Errorf("fetching prices of %s: %w", j.source.Symbol, err)
	}

	rawDays, err := list(j.source.DatesPath, doc)
	if err != nil {
		return nil, err
	}
	rawPrices, err := list(j.source.PricesPath, doc)
	if err != nil {
		return nil, err
	}
	if len(rawDays) != len(rawPrices) {
		return nil, fmt.Errorf("json feed for %s returned %d days and %d prices", j.source.Symbol, len(rawDays), len(rawPrices))
	}

	var out []domain.PriceObservation
	for i := range rawDays {
		day, err := toDay(rawDays[i])
		if err != nil {
			return nil, fmt.Errorf("json feed for %s, entry %d: %w", j.source.Symbol, i, err)
		}
		if day.Before(from) || day.After(to) {
			continue
		}
		price, err := toDecimal(rawPrices[i])
		if err != nil {
			return nil, fmt.Errorf("json feed for %s, entry %d: %w", j.source.Symbol, i, err)
		}
		out = append(out, observation(j.source, day, price))
	}
	return out, nil
}

func (j *JSONFeed) get(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := j.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody+1))
	if err != nil {
		return err
	}
	if len(body) > maxFeedBody {
		return fmt.Errorf("response of %v%v exceeds %d bytes", resp.Request.URL.Host, resp.Request.URL.Path, maxFeedBody)
	}
	// numbers stay json.Number so prices never pass through float64
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(data)
}

// list evaluates path and always returns a list, since jsonpath returns a bare value
// for single matches.
func list(path string, doc any) ([]any, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", path, err)
	}
	if l, ok := v.([]any); ok {
		return l, nil
	}
	return []any{v}, nil
}

// toDay accepts ISO days, RFC 3339 timestamps and unix seconds.
func toDay(v any) (time.Time, error) {
	switch t := v.(type) {
	case string:
		if day, err := time.Parse(dates.Format, t); err == nil {
			return day, nil
		}
		ts, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day %q", t)
		}
		return dates.Truncate(ts), nil
	case json.Number:
		secs, err := t.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day %v", t)
		}
		return dates.Truncate(time.Unix(secs, 0).UTC()), nil
	}
	return time.Time{}, fmt.Errorf("invalid day %v", v)
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price %v", t)
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(t), ",", ""))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price %q", t)
		}
		return d, nil
	}
	return decimal.Zero, fmt.Errorf("invalid price %v", v)
}
