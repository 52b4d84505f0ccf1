// Package domain contains the core domain types for the pricing context.
package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/pool"
)

// Side represents the side of an order-book level.
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// OrderBookLevel is a single price level of a pool's book.
// Immutable snapshot, no identity beyond its values.
type OrderBookLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Side     Side
}

// PriceLevels holds both sides of a pool's visible book.
type PriceLevels struct {
	Bids []OrderBookLevel
	Asks []OrderBookLevel
}

// PriceSnapshot is the derived best-of-book view for a pool.
// Invariant: BestBid > 0, BestAsk > 0, Mid = (BestBid+BestAsk)/2.
type PriceSnapshot struct {
	PoolKey   pool.Key
	BestBid   decimal.Decimal
	BestAsk   decimal.Decimal
	Mid       decimal.Decimal
	Timestamp time.Time
}

var two = decimal.NewFromInt(2)

// ComputeSnapshot derives the best bid, best ask and mid price from an
// unordered list of levels. The list order never affects the result.
//
// Fails with NoData when the book is empty, InsufficientLiquidity when
// either side has no valid entries, and InvalidPrice when the derived
// mid is non-positive.
func ComputeSnapshot(key pool.Key, levels []OrderBookLevel) (*PriceSnapshot, error) {
	if len(levels) == 0 {
		return nil, apperror.New(apperror.CodeNoData,
			apperror.WithContext(fmt.Sprintf("pool %s returned no book entries", key)))
	}

	var bestBid, bestAsk decimal.Decimal
	var haveBid, haveAsk bool

	for _, level := range levels {
		// Entries without a usable price carry no pricing information.
		if !level.Price.IsPositive() {
			continue
		}
		switch level.Side {
		case SideBid:
			if !haveBid || level.Price.GreaterThan(bestBid) {
				bestBid = level.Price
				haveBid = true
			}
		case SideAsk:
			if !haveAsk || level.Price.LessThan(bestAsk) {
				bestAsk = level.Price
				haveAsk = true
			}
		}
	}

	if !haveBid || !haveAsk {
		return nil, apperror.New(apperror.CodeInsufficientLiquidity,
			apperror.WithContext(fmt.Sprintf("pool %s has an empty book side", key)))
	}

	mid := bestBid.Add(bestAsk).Div(two)
	if !mid.IsPositive() {
		return nil, apperror.New(apperror.CodeInvalidPrice,
			apperror.WithContext(fmt.Sprintf("pool %s mid price %s is not positive", key, mid)))
	}

	return &PriceSnapshot{
		PoolKey:   key,
		BestBid:   bestBid,
		BestAsk:   bestAsk,
		Mid:       mid,
		Timestamp: time.Now(),
	}, nil
}

// SortedLevels splits levels by side, sorts bids descending and asks
// ascending by price, and truncates each side to depth. Calling it twice
// over an unchanged book yields identical output.
func SortedLevels(levels []OrderBookLevel, depth int) PriceLevels {
	bids := make([]OrderBookLevel, 0, depth)
	asks := make([]OrderBookLevel, 0, depth)

	for _, level := range levels {
		if !level.Price.IsPositive() {
			continue
		}
		switch level.Side {
		case SideBid:
			bids = append(bids, level)
		case SideAsk:
			asks = append(asks, level)
		}
	}

	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Price.GreaterThan(bids[j].Price)
	})
	sort.SliceStable(asks, func(i, j int) bool {
		return asks[i].Price.LessThan(asks[j].Price)
	})

	if depth > 0 {
		if len(bids) > depth {
			bids = bids[:depth]
		}
		if len(asks) > depth {
			asks = asks[:depth]
		}
	}

	return PriceLevels{Bids: bids, Asks: asks}
}

// TotalDepth sums the quantity across all levels on both sides. Used as
// a coarse depth proxy for liquidity checks.
func TotalDepth(levels []OrderBookLevel) decimal.Decimal {
	total := decimal.Zero
	for _, level := range levels {
		total = total.Add(level.Quantity)
	}
	return total
}
