package model

import "github.com/shopspring/decimal"

// Result is one classification row per (session, car). Gap and time
// columns are kept as display strings like the timing sheets print them;
// only the fastest-lap speed is numeric.
type Result struct {
	ID         int              `json:"id"`
	SessionID  int              `json:"sessionId"`
	CarEntryID int              `json:"carEntryId"`
	Position   *int             `json:"position,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Laps       *int             `json:"laps,omitempty"`
	TotalTime  *string          `json:"totalTime,omitempty"`
	GapFirst   *string          `json:"gapFirst,omitempty"`
	FlLapnum   *int             `json:"flLapnum,omitempty"`
	FlTime     *string          `json:"flTime,omitempty"`
	FlKph      *decimal.Decimal `json:"flKph,omitempty"`
}
