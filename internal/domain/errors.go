package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrEditConflict        = errors.New("edit conflict")
	ErrSeatNotAvailable    = errors.New("at least one selected seat is not available")
	ErrIllegalStatus       = errors.New("operation not allowed in the current status")
	ErrOverlappingShowtime = errors.New("a showtime already exists in this room at the specified time")
	ErrResourceInUse       = errors.New("resource is referenced by other records")
)
