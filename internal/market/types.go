package market

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the layout of Snapshot.CapturedAt on the wire.
const TimestampLayout = "2006-01-02 15:04:05"

// Outcome is one selectable choice within a market and its current odds.
type Outcome struct {
	Text string `json:"text"`
	Odds string `json:"odds"`
}

// Market is a single betting proposition (e.g. "1X2") with its outcomes in
// the order the page offers them.
type Market struct {
	MarketID   *string   `json:"market_id"`
	MarketPart *string   `json:"market_part"`
	Legend     string    `json:"legend"`
	Outcomes   []Outcome `json:"outcomes"`
}

// ID returns the market identifier or "" when the page did not expose one.
func (m Market) ID() string {
	if m.MarketID == nil {
		return ""
	}
	return *m.MarketID
}

// Part returns the market part token or "" when absent.
func (m Market) Part() string {
	if m.MarketPart == nil {
		return ""
	}
	return *m.MarketPart
}

// Snapshot is the result of one extraction pass.
type Snapshot struct {
	CapturedAt time.Time
	Markets    []Market
}

// NewSnapshot wraps markets with a capture time. The slice is copied so the
// snapshot never aliases the caller's backing array.
func NewSnapshot(at time.Time, markets []Market) Snapshot {
	cp := make([]Market, len(markets))
	copy(cp, markets)
	return Snapshot{CapturedAt: at, Markets: cp}
}

// Len returns the number of markets in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Markets)
}

type wireSnapshot struct {
	Timestamp string   `json:"timestamp"`
	Data      []Market `json:"data"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	data := s.Markets
	if data == nil {
		data = []Market{}
	}
	return json.Marshal(wireSnapshot{
		Timestamp: s.CapturedAt.Format(TimestampLayout),
		Data:      data,
	})
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var w wireSnapshot
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	at, err := time.ParseInLocation(TimestampLayout, w.Timestamp, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", w.Timestamp, err)
	}
	s.CapturedAt = at
	s.Markets = w.Data
	return nil
}
