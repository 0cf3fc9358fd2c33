package chain

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/xhhuango/json"

	opterrors "github.com/Hari31416/optionalyzer/errors"
	"github.com/Hari31416/optionalyzer/logging"
)

// LoadJSON reads a full chain, spot and expiry included, from a JSON file.
func LoadJSON(path string) (*Chain, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, opterrors.Wrapf(err, "reading chain file %s", path)
	}

	ch := &Chain{}
	if err := json.Unmarshal(raw, ch); err != nil {
		return nil, opterrors.Wrapf(err, "parsing chain file %s", path)
	}

	logger := logging.WithComponent("chain")
	logger.Info().
		Str("file", path).Int("quotes", len(ch.Quotes)).Msg("chain loaded")
	return ch, nil
}

// csvQuote mirrors Quote for gocsv header binding.
type csvQuote struct {
	Strike    float64 `csv:"strike"`
	CallPrice float64 `csv:"call_price"`
	PutPrice  float64 `csv:"put_price"`
}

// LoadCSV reads chain rows from a CSV file with strike/call_price/put_price
// columns. Spot and expiry are not part of the row format and come from the
// caller.
func LoadCSV(path string, spot float64, expiry string) (*Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, opterrors.Wrapf(err, "opening chain file %s", path)
	}
	defer f.Close()

	var rows []*csvQuote
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, opterrors.Wrapf(err, "parsing chain file %s", path)
	}

	ch := &Chain{Spot: spot, Expiry: expiry, Quotes: make([]Quote, 0, len(rows))}
	for _, row := range rows {
		ch.Quotes = append(ch.Quotes, Quote{Strike: row.Strike, CallPrice: row.CallPrice, PutPrice: row.PutPrice})
	}

	logger := logging.WithComponent("chain")
	logger.Info().
		Str("file", path).Int("quotes", len(ch.Quotes)).Msg("chain loaded")
	return ch, nil
}
