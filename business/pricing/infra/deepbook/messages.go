// Package deepbook implements the BookProvider interface against the
// order-book venue's indexer and WebSocket feed.
package deepbook

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/avela-dev/dcavault/business/pricing/domain"
)

// LevelRecord is a raw price level as returned by the indexer.
// Price and quantity arrive as JSON numbers or numeric strings.
type LevelRecord struct {
	Price    json.Number `json:"price"`
	Quantity json.Number `json:"quantity"`
}

// Level2Response normalizes the indexer's level2 payload. The endpoint
// has returned both a bare list and a wrapped {"data": [...]} object
// across versions; anything else decodes as empty data.
type Level2Response struct {
	Records []LevelRecord
}

func (r *Level2Response) UnmarshalJSON(data []byte) error {
	var bare []LevelRecord
	if err := json.Unmarshal(data, &bare); err == nil {
		r.Records = bare
		return nil
	}

	var wrapped struct {
		Data []LevelRecord `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		r.Records = wrapped.Data
		return nil
	}

	// Unrecognized shape reads as no data rather than a decode failure.
	r.Records = nil
	return nil
}

// ParseLevels converts raw records into domain levels for one book side.
// Records with a missing or non-numeric price are discarded.
func ParseLevels(records []LevelRecord, side domain.Side) []domain.OrderBookLevel {
	levels := make([]domain.OrderBookLevel, 0, len(records))
	for _, rec := range records {
		price, err := decimal.NewFromString(rec.Price.String())
		if err != nil {
			continue
		}
		qty, err := decimal.NewFromString(rec.Quantity.String())
		if err != nil {
			qty = decimal.Zero
		}
		levels = append(levels, domain.OrderBookLevel{
			Price:    price,
			Quantity: qty,
			Side:     side,
		})
	}
	return levels
}

// WebSocket feed messages

// WSRequest is a WebSocket subscription request.
type WSRequest struct {
	Method string   `json:"method"`
	Pools  []string `json:"pools"`
	ID     int64    `json:"id"`
}

// WSResponse is a WebSocket subscription acknowledgement.
type WSResponse struct {
	Result json.RawMessage `json:"result"`
	ID     int64           `json:"id"`
}

// BookEvent is a full book snapshot pushed for a subscribed pool.
// Levels arrive as [price, quantity] string pairs.
type BookEvent struct {
	Pool        string     `json:"pool"`
	Bids        [][]string `json:"bids"`
	Asks        [][]string `json:"asks"`
	TimestampMs int64      `json:"timestamp"`
}

// ParsePairs converts [price, quantity] pairs into domain levels,
// skipping malformed or zero-quantity entries.
func ParsePairs(raw [][]string, side domain.Side) []domain.OrderBookLevel {
	levels := make([]domain.OrderBookLevel, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			continue
		}
		price, err := decimal.NewFromString(pair[0])
		if err != nil {
			continue
		}
		qty, err := decimal.NewFromString(pair[1])
		if err != nil || qty.IsZero() {
			continue
		}
		levels = append(levels, domain.OrderBookLevel{
			Price:    price,
			Quantity: qty,
			Side:     side,
		})
	}
	return levels
}
