// Package settings implements the gateway display settings record: the QR
// code image and receiver identity shown to members initiating a transfer.
package settings

import (
	"time"
)

// Hard-coded defaults used until an administrator saves the first record.
const (
	DefaultQRCodeURL      = ""
	DefaultReceiverName   = "Alpha Banking Cooperative"
	DefaultReceiverNumber = "+63 917 XXX XXXX"
)

// StorageKey is the default key under which the serialized record is kept
// in the durable key-value store.
const StorageKey = "gateway_settings"

// Settings is the gateway settings record. There is exactly one live record
// per process; it is replaced as a whole, never field by field.
type Settings struct {
	QRCodeURL      string
	ReceiverName   string
	ReceiverNumber string
	UpdatedAt      time.Time
}

// Defaults returns the hard-coded default record. UpdatedAt is left zero,
// the service stamps it at construction.
func Defaults() Settings {
	return Settings{
		QRCodeURL:      DefaultQRCodeURL,
		ReceiverName:   DefaultReceiverName,
		ReceiverNumber: DefaultReceiverNumber,
	}
}

// SettingsJSON is the wire and persisted form of the record. All fields are
// strings, UpdatedAt is RFC 3339.
type SettingsJSON struct {
	QRCodeURL      string `json:"qrCodeUrl"`
	ReceiverName   string `json:"receiverName"`
	ReceiverNumber string `json:"receiverNumber"`
	UpdatedAt      string `json:"updatedAt"`
}

// Convert to JSON version
func (s Settings) ToJSON() SettingsJSON {
	return SettingsJSON{
		QRCodeURL:      s.QRCodeURL,
		ReceiverName:   s.ReceiverName,
		ReceiverNumber: s.ReceiverNumber,
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}
