package importer

import "errors"

var (
	ErrSessionNotFound              = errors.New("session not found")
	ErrCarEntryNotFound             = errors.New("car entry not found")
	ErrCarDriverAssociationNotFound = errors.New("car-driver association not found")
	ErrTransport                    = errors.New("transport error")
)
