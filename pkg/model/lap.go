package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Lap struct {
	ID                    int              `json:"id"`
	CarEntryID            int              `json:"carEntryId"`
	DriverID              int              `json:"driverId"`
	LapNumber             int              `json:"lapNumber"`
	LapTimeSeconds        decimal.Decimal  `json:"lapTimeSeconds"`
	SessionElapsedSeconds decimal.Decimal  `json:"sessionElapsedSeconds"`
	Timestamp             time.Time        `json:"timestamp"`
	AverageSpeedKph       *decimal.Decimal `json:"averageSpeedKph,omitempty"`
}

// Sector holds one of up to three timed segments of a lap. LapID is
// assigned after the owning lap got its database id.
type Sector struct {
	ID                int             `json:"id"`
	LapID             int             `json:"lapId"`
	SectorNumber      int             `json:"sectorNumber"`
	SectorTimeSeconds decimal.Decimal `json:"sectorTimeSeconds"`
}
