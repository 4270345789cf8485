package service

import "errors"

var (
	ErrScanNotFound      = errors.New("scan not found")
	ErrPickupNotFound    = errors.New("pickup not found")
	ErrPickupNotReady    = errors.New("pickup is not ready for collection")
	ErrInvalidTransition = errors.New("invalid pickup transition")
)
