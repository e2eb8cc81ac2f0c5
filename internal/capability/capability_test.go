package capability

import (
	"testing"

	"github.com/pawcare-dev/pawcare/internal/session"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		providerType    session.ProviderType
		manageServices  bool
		manageBookings  bool
		manageInventory bool
		vetFeatures     bool
		label           string
	}{
		{session.ProviderVet, true, true, false, true, "Vet"},
		{session.ProviderShop, false, false, true, false, "Shop Owner"},
		{session.ProviderBabysitter, true, true, false, false, "Groomer"},
		{session.ProviderType(""), false, false, false, false, "Provider"},
		{session.ProviderType("walker"), false, false, false, false, "Provider"},
	}

	for _, tt := range tests {
		t.Run(string(tt.providerType), func(t *testing.T) {
			if got := CanManageServices(tt.providerType); got != tt.manageServices {
				t.Errorf("CanManageServices(%q) = %v, want %v", tt.providerType, got, tt.manageServices)
			}
			if got := CanManageBookings(tt.providerType); got != tt.manageBookings {
				t.Errorf("CanManageBookings(%q) = %v, want %v", tt.providerType, got, tt.manageBookings)
			}
			if got := CanManageInventory(tt.providerType); got != tt.manageInventory {
				t.Errorf("CanManageInventory(%q) = %v, want %v", tt.providerType, got, tt.manageInventory)
			}
			if got := CanAccessVetFeatures(tt.providerType); got != tt.vetFeatures {
				t.Errorf("CanAccessVetFeatures(%q) = %v, want %v", tt.providerType, got, tt.vetFeatures)
			}
			if got := ProviderTypeLabel(tt.providerType); got != tt.label {
				t.Errorf("ProviderTypeLabel(%q) = %q, want %q", tt.providerType, got, tt.label)
			}
		})
	}
}

func TestFlagsFor(t *testing.T) {
	flags := FlagsFor(session.ProviderShop)
	if !flags.ManageInventory || flags.ManageServices || flags.ManageBookings || flags.VetFeatures {
		t.Errorf("FlagsFor(shop) = %+v", flags)
	}
	if flags.Label != "Shop Owner" {
		t.Errorf("Label = %q, want %q", flags.Label, "Shop Owner")
	}
}
