// Package analytics builds the beacon event taxonomy and forwards events to an
// ingestion sink.
//
// Two surfaces share one emitter: Node reports lifecycle events of the pinning
// node, API reports public API request outcomes keyed by the caller's domain.
// When no sink is configured every tracking method is a no-op returning false.
package analytics

import "time"

// FallbackAnonymousID is attached to events that carry no identifying input.
// It must stay stable so analytics cohorts are not fragmented.
const FallbackAnonymousID = "3box"

// Node event names.
const (
	EventPinDB          = "pin_db"
	EventPinDBAddress   = "pin_db_address"
	EventSyncDB         = "sync_db"
	EventInfraMetrics   = "infra_metrics"
	EventSpaceUpdate    = "space_update"
	EventSpaceUpdateApp = "space_update_app"
	EventPublicUpdate   = "public_update"
	EventPrivateUpdate  = "private_update"
	EventRootUpdate     = "root_update"
	EventThreadUpdate   = "thread_update"
)

// API event names.
const (
	EventAPIListSpaces  = "api_list_spaces"
	EventAPIGetConfig   = "api_get_config"
	EventAPIGetThread   = "api_get_thread"
	EventAPIGetSpace    = "api_get_space"
	EventAPIGetProfile  = "api_get_profile"
	EventAPIGetProfiles = "api_get_profiles"
)

// Property keys. These are part of the external analytics schema.
const (
	PropTime                = "time"
	PropNewAccount          = "new_account"
	PropAddress             = "address"
	PropAddressHash         = "address_hash"
	PropSpace               = "space"
	PropName                = "name"
	PropStatus              = "status"
	PropOrigin              = "origin"
	PropProfileExisted      = "profile_existed"
	PropResidentMemoryUsage = "resident_memory_usage"
	PropHeapTotalMemory     = "heap_total_memory"
	PropHeapUsedMemory      = "heap_used_memory"
)

// Properties holds the domain-specific fields of an event.
type Properties map[string]any

// Event is one tracked occurrence. It is built fresh per call and not touched
// after it has been handed to a Sink.
type Event struct {
	Name        string
	Properties  Properties
	AnonymousID string
	// Timestamp is the instant stamped by the emitter; Properties[PropTime]
	// carries the same instant in epoch milliseconds.
	Timestamp time.Time
}

// Time returns the epoch-millisecond timestamp stamped by the emitter, or 0.
func (e Event) Time() int64 {
	ms, _ := e.Properties[PropTime].(int64)
	return ms
}

// Taxonomy lists every event name beacon may emit.
func Taxonomy() []string {
	return []string{
		EventPinDB, EventPinDBAddress, EventSyncDB, EventInfraMetrics,
		EventSpaceUpdate, EventSpaceUpdateApp, EventPublicUpdate,
		EventPrivateUpdate, EventRootUpdate, EventThreadUpdate,
		EventAPIListSpaces, EventAPIGetConfig, EventAPIGetThread,
		EventAPIGetSpace, EventAPIGetProfile, EventAPIGetProfiles,
	}
}
