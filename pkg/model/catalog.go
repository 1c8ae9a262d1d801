package model

import "time"

// catalog entities created by the importer via find-or-create
// (a pre-existing row always wins over a new insert)

type Series struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Event struct {
	ID        int       `json:"id"`
	SeriesID  int       `json:"seriesId"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type Session struct {
	ID              int       `json:"id"`
	EventID         int       `json:"eventId"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	StartTime       time.Time `json:"startDatetime"`
	DurationSeconds int       `json:"durationSeconds"`
}

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Class is scoped to a series; natural key is (seriesId, name).
type Class struct {
	ID       int    `json:"id"`
	SeriesID int    `json:"seriesId"`
	Name     string `json:"name"`
}

type CarModel struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	FullName *string `json:"fullName,omitempty"`
}

// Driver identity is the exact (firstName, lastName) pair. No
// normalization happens on purpose; spelling variants yield distinct rows.
type Driver struct {
	ID          int     `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Nationality *string `json:"nationality,omitempty"`
	Hometown    *string `json:"hometown,omitempty"`
	LicenseType *string `json:"licenseType,omitempty"`
}
