// package repositories provides the cache and collection layers over the
// storage engine.
//
// GuideRepository maintains the master guide set and its offline-pinned
// subset. DestinationRepository and TripRepository persist user-created
// content under engine-assigned keys.
//
// Error policy, applied uniformly: write paths surface failures to the
// caller; read paths degrade to empty results with a logged warning so a
// storage hiccup shows up as "no cached data" rather than a crash.
package repositories

import (
	"encoding/json"
	"fmt"
)

// marshal encodes an entity for storage.
func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}
