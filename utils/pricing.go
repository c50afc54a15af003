package utils

import (
	"fmt"

	"github.com/pellerin-apps/detailing-api/models"
)

// PricingError reports a pricing input the tenant has not configured.
type PricingError struct {
	Code    string
	Message string
}

func (e *PricingError) Error() string {
	return e.Message
}

// ComputeTotal prices a set of requested services against a tenant's price
// list: each service contributes basePrice * sizeMultiplier for the vehicle's
// size category. An empty service list totals zero. A service name absent
// from the price list is rejected rather than silently priced at zero, so a
// misconfigured price list surfaces immediately instead of shaving totals.
// Pure and deterministic.
func ComputeTotal(priceList models.PriceList, services []string, size models.VehicleSize) (float64, error) {
	if !size.Valid() {
		return 0, &PricingError{
			Code:    "INVALID_VEHICLE_SIZE",
			Message: fmt.Sprintf("Unknown vehicle size: %q", size),
		}
	}

	total := 0.0
	for _, service := range services {
		entry, ok := priceList.Find(service)
		if !ok {
			return 0, &PricingError{
				Code:    "UNKNOWN_SERVICE",
				Message: fmt.Sprintf("Service %q is not in the price list", service),
			}
		}
		total += entry.BasePrice * multiplierFor(entry.SizeMultiplier, size)
	}

	return total, nil
}

func multiplierFor(m models.SizeMultiplier, size models.VehicleSize) float64 {
	switch size {
	case models.SizeSmall:
		return m.Small
	case models.SizeMedium:
		return m.Medium
	default:
		return m.Large
	}
}
