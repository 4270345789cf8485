package model

import "time"

type StoreInstructions struct {
	EN string
	KZ string
}

type StoreInfo struct {
	Name           string
	Location       string
	Instructions   StoreInstructions
	OperatingHours string
	ContactInfo    string
}

type SystemServices struct {
	Scanner bool
	Display bool
	API     bool
}

type SystemStatus struct {
	Status     string
	Uptime     int64
	LastUpdate time.Time
	Services   SystemServices
}

type Health struct {
	Status          string
	Uptime          int64
	Version         string
	Services        map[string]bool
	LastHealthCheck time.Time
}

type QRDisplayData struct {
	QRCode    string
	QRCodeURL string
	DisplayID string
}

type DisplayConfig struct {
	RefreshInterval  time.Duration
	QRSize           int
	ShowInstructions bool
	Language         string
	Theme            string
}
