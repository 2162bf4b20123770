package tiered

import "fmt"

type constError string

// ErrInvalidCapacity is wrapped by the errors reported for negative tier
// capacities.
const ErrInvalidCapacity = constError("invalid capacity")

func (errStr constError) Error() string { return string(errStr) }

// ValidateCapacities reports an error if any of the capacities is negative.
func ValidateCapacities(cache, page, disk int) error {
	for _, c := range []struct {
		tier     Tier
		capacity int
	}{
		{TierCache, cache},
		{TierPage, page},
		{TierDisk, disk},
	} {
		if c.capacity < 0 {
			return fmt.Errorf(
				"%w: %s capacity must be >=0 but %d was requested",
				ErrInvalidCapacity, c.tier, c.capacity)
		}
	}

	return nil
}
