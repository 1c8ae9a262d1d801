package model

// CarEntry represents one car's participation in one session.
// Natural key is (sessionId, number).
type CarEntry struct {
	ID           int     `json:"id"`
	SessionID    int     `json:"sessionId"`
	TeamID       int     `json:"teamId"`
	ClassID      int     `json:"classId"`
	CarModelID   int     `json:"carModelId"`
	Number       string  `json:"number"`
	TireSupplier *string `json:"tireSupplier,omitempty"`
}

// CarDriver joins a car entry and a driver with the seat index reported
// by the timing sheet. Natural key is (carEntryId, driverId); the first
// reported driver number wins.
type CarDriver struct {
	ID           int `json:"id"`
	CarEntryID   int `json:"carEntryId"`
	DriverID     int `json:"driverId"`
	DriverNumber int `json:"driverNumber"`
}
