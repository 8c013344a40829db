// Package series generates synthetic OHLC data for chart bootstrap
// when no live history is available.
package series

import (
	"math"
	"math/rand"
	"time"

	"github.com/newthinker/pulse/internal/core"
)

const (
	// barSpacing is the interval between consecutive bars.
	barSpacing = time.Minute

	// maxBodyMove bounds the open-to-close move of a single bar.
	maxBodyMove = 0.0004

	// maxWick bounds the high/low extension beyond the bar body.
	maxWick = 0.0003
)

// DefaultStartPrice is the EURUSD baseline used when none is configured.
const DefaultStartPrice = 1.0850

// Generate produces count sequential bars ending at "now" via a random
// walk from startPrice. Each bar opens at the previous close; values
// are rounded to five fractional digits. The walk is reseeded on every
// call, so only the shape is deterministic.
func Generate(count int, startPrice float64) []core.Candle {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return generate(count, startPrice, time.Now(), rng)
}

func generate(count int, startPrice float64, now time.Time, rng *rand.Rand) []core.Candle {
	if count <= 0 {
		return nil
	}

	candles := make([]core.Candle, 0, count)
	price := startPrice

	for i := 0; i < count; i++ {
		open := price
		closePrice := open + (rng.Float64()*2-1)*maxBodyMove
		high := math.Max(open, closePrice) + rng.Float64()*maxWick
		low := math.Min(open, closePrice) - rng.Float64()*maxWick

		candles = append(candles, core.Candle{
			Time:  now.Add(-time.Duration(count-i) * barSpacing),
			Open:  core.NewPrice(open),
			High:  core.NewPrice(high),
			Low:   core.NewPrice(low),
			Close: core.NewPrice(closePrice),
		})

		price = closePrice
	}

	return candles
}
