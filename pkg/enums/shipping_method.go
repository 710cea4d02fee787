package enums

import "fmt"

// ShippingMethod selects how an order reaches the customer.
type ShippingMethod string

const (
	ShippingMethodCentral ShippingMethod = "central"
	ShippingMethodHome    ShippingMethod = "home"
)

var validShippingMethods = []ShippingMethod{
	ShippingMethodCentral,
	ShippingMethodHome,
}

func (s ShippingMethod) String() string {
	return string(s)
}

func (s ShippingMethod) IsValid() bool {
	for _, candidate := range validShippingMethods {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShippingMethod converts raw input into a ShippingMethod. "pickup" is
// accepted as a legacy spelling of central pickup.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	if value == "pickup" {
		return ShippingMethodCentral, nil
	}
	for _, candidate := range validShippingMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping method %q", value)
}
