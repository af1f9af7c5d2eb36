package storage

// Store names, matching the tables created by the schema migrations.
const (
	StoreGuides        = "destination_guides"
	StoreOfflineGuides = "offline_guides"
	StoreDestinations  = "destinations"
	StoreTripPlans     = "trip_plans"
)

// StoreSpec describes one store's key discipline.
type StoreSpec struct {
	Name    string
	AutoKey bool // engine-assigned integer keys vs caller-supplied string keys
}

// stores is the registry of declared stores. Operations against a name not
// listed here fail with [shared.ErrUnknownStore].
var stores = map[string]StoreSpec{
	StoreGuides:        {Name: StoreGuides},
	StoreOfflineGuides: {Name: StoreOfflineGuides},
	StoreDestinations:  {Name: StoreDestinations, AutoKey: true},
	StoreTripPlans:     {Name: StoreTripPlans, AutoKey: true},
}
