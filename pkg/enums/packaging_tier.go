package enums

import "fmt"

// PackagingTier selects the packaging upgrade for an order.
type PackagingTier string

const (
	PackagingTierStandard PackagingTier = "standard"
	PackagingTierPremium  PackagingTier = "premium"
)

var validPackagingTiers = []PackagingTier{
	PackagingTierStandard,
	PackagingTierPremium,
}

func (p PackagingTier) String() string {
	return string(p)
}

func (p PackagingTier) IsValid() bool {
	for _, candidate := range validPackagingTiers {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePackagingTier converts raw input into a PackagingTier.
func ParsePackagingTier(value string) (PackagingTier, error) {
	for _, candidate := range validPackagingTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid packaging tier %q", value)
}
