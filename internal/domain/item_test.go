package domain

import (
	"errors"
	"testing"
)

func TestParseStorageLocation(t *testing.T) {
	for _, valid := range []string{"refrigerator", "freezer", "room_temperature"} {
		if _, err := ParseStorageLocation(valid); err != nil {
			t.Errorf("ParseStorageLocation(%q) error = %v, want nil", valid, err)
		}
	}

	for _, invalid := range []string{"", "basement", "Refrigerator", "冷蔵庫"} {
		if _, err := ParseStorageLocation(invalid); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("ParseStorageLocation(%q) error = %v, want ErrInvalidRequest", invalid, err)
		}
	}
}

func TestStorageLocation_DisplayClass(t *testing.T) {
	tests := []struct {
		location StorageLocation
		want     string
	}{
		{StorageRefrigerator, "fridge"},
		{StorageFreezer, "freezer"},
		{StorageRoomTemp, "room"},
		{StorageLocation("bogus"), ""},
	}

	for _, tt := range tests {
		if got := tt.location.DisplayClass(); got != tt.want {
			t.Errorf("DisplayClass(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}

func TestInventoryItem_ExpiresOn(t *testing.T) {
	t.Run("parses a stored expiry date", func(t *testing.T) {
		item := InventoryItem{Name: "牛乳", ExpiryDate: "2026-09-02"}
		got, ok := item.ExpiresOn()
		if !ok {
			t.Fatal("ExpiresOn() ok = false, want true")
		}
		if got.Format(DateLayout) != "2026-09-02" {
			t.Errorf("ExpiresOn() = %v, want 2026-09-02", got)
		}
	})

	t.Run("absent expiry reports not ok", func(t *testing.T) {
		item := InventoryItem{Name: "食パン"}
		if _, ok := item.ExpiresOn(); ok {
			t.Error("ExpiresOn() ok = true, want false for absent expiry")
		}
	})

	t.Run("unparseable expiry reports not ok", func(t *testing.T) {
		item := InventoryItem{Name: "食パン", ExpiryDate: "next week"}
		if _, ok := item.ExpiresOn(); ok {
			t.Error("ExpiresOn() ok = true, want false for bad date")
		}
	})
}
