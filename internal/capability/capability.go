// Package capability maps a provider's sub-type to the features their
// dashboard exposes. Pure total functions; every unknown or empty sub-type
// resolves to the restricted default (dashboard, profile, posts, feedback
// only).
package capability

import "github.com/pawcare-dev/pawcare/internal/session"

// CanManageServices reports whether the provider type offers bookable
// services (vets and groomers do, shops sell goods instead)
func CanManageServices(t session.ProviderType) bool {
	return t == session.ProviderVet || t == session.ProviderBabysitter
}

// CanManageBookings mirrors CanManageServices: only providers with bookable
// services have bookings to manage
func CanManageBookings(t session.ProviderType) bool {
	return CanManageServices(t)
}

// CanManageInventory is true only for shop owners
func CanManageInventory(t session.ProviderType) bool {
	return t == session.ProviderShop
}

// CanAccessVetFeatures gates medical records and prescriptions
func CanAccessVetFeatures(t session.ProviderType) bool {
	return t == session.ProviderVet
}

// ProviderTypeLabel returns the display label for a provider type
func ProviderTypeLabel(t session.ProviderType) string {
	switch t {
	case session.ProviderVet:
		return "Vet"
	case session.ProviderShop:
		return "Shop Owner"
	case session.ProviderBabysitter:
		return "Groomer"
	default:
		return "Provider"
	}
}

// Flags bundles the full capability set for one provider type, used by the
// provider navigation endpoint
type Flags struct {
	ManageServices  bool   `json:"manage_services"`
	ManageBookings  bool   `json:"manage_bookings"`
	ManageInventory bool   `json:"manage_inventory"`
	VetFeatures     bool   `json:"vet_features"`
	Label           string `json:"label"`
}

// FlagsFor resolves the capability set for a provider type
func FlagsFor(t session.ProviderType) Flags {
	return Flags{
		ManageServices:  CanManageServices(t),
		ManageBookings:  CanManageBookings(t),
		ManageInventory: CanManageInventory(t),
		VetFeatures:     CanAccessVetFeatures(t),
		Label:           ProviderTypeLabel(t),
	}
}
