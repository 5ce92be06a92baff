package domain

import "time"

// DateLayout is the calendar-date format used for purchase and expiry dates.
// An empty string means the date is absent.
const DateLayout = "2006-01-02"

// StorageLocation is the closed set of places an item can be kept.
type StorageLocation string

const (
	StorageRefrigerator StorageLocation = "refrigerator"
	StorageFreezer      StorageLocation = "freezer"
	StorageRoomTemp     StorageLocation = "room_temperature"
)

// ParseStorageLocation validates a storage location string. Unknown values are
// an error rather than a silent default so a new location cannot fall through.
func ParseStorageLocation(s string) (StorageLocation, error) {
	switch StorageLocation(s) {
	case StorageRefrigerator, StorageFreezer, StorageRoomTemp:
		return StorageLocation(s), nil
	}
	return "", ErrInvalidRequest
}

// DisplayClass returns the presentation class for a storage location.
// The switch is exhaustive over the enum; anything else is a decode bug
// upstream and maps to an empty class.
func (l StorageLocation) DisplayClass() string {
	switch l {
	case StorageRefrigerator:
		return "fridge"
	case StorageFreezer:
		return "freezer"
	case StorageRoomTemp:
		return "room"
	}
	return ""
}

// ExpiryClassification is the derived expiry-urgency label for an item.
// It is computed at render time and never persisted.
type ExpiryClassification string

const (
	ExpiryFresh        ExpiryClassification = "fresh"
	ExpiryExpiringSoon ExpiryClassification = "expiring_soon"
	ExpiryNone         ExpiryClassification = "no_expiry"
)

// InventoryItem represents one tracked perishable. Dates are DateLayout
// strings; an empty ExpiryDate means no tracked expiry. The JSON keys match
// the persisted blob format.
type InventoryItem struct {
	Name         string          `json:"name"`
	PurchaseDate string          `json:"purchase"`
	ExpiryDate   string          `json:"expiry"`
	Storage      StorageLocation `json:"storage"`
}

// ExpiresOn parses the item's expiry date. ok is false when no expiry is set
// or the stored value does not parse.
func (i InventoryItem) ExpiresOn() (time.Time, bool) {
	if i.ExpiryDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, i.ExpiryDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
