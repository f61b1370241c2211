package analytics

import (
	"context"

	"github.com/okian/beacon/pkg/logger"
)

// Node reports lifecycle events of the pinning node. Safe for concurrent use.
type Node struct {
	em     *emitter
	memory MemoryReader
}

// TrackPinDB reports that the root database of did was pinned.
func (n *Node) TrackPinDB(ctx context.Context, did string, newAccount bool) bool {
	return n.em.emit(ctx, Event{
		Name:       EventPinDB,
		Properties: Properties{PropNewAccount: newAccount},
	}, Hash(did))
}

// TrackPinDBAddress reports a pin of a database only known by its address,
// for databases whose address is not linked from a root store.
func (n *Node) TrackPinDBAddress(ctx context.Context, address string) bool {
	hashed := Hash(address)
	return n.em.emit(ctx, Event{
		Name:       EventPinDBAddress,
		Properties: Properties{PropAddressHash: hashed},
	}, hashed)
}

// TrackSyncDB reports that the database at address was synced.
func (n *Node) TrackSyncDB(ctx context.Context, address string) bool {
	return n.em.emit(ctx, Event{
		Name:       EventSyncDB,
		Properties: Properties{PropAddress: address},
	}, "")
}

// TrackInfraMetrics reports the process memory footprint in megabytes.
func (n *Node) TrackInfraMetrics(ctx context.Context) bool {
	if !n.em.enabled() {
		return n.em.emit(ctx, Event{Name: EventInfraMetrics}, "")
	}

	stats, err := n.memory.ReadMemory(ctx)
	if err != nil {
		n.em.log.Warn(ctx, "read process memory", logger.Error(err))
		return false
	}
	return n.em.emit(ctx, Event{
		Name: EventInfraMetrics,
		Properties: Properties{
			PropResidentMemoryUsage: megabytes(stats.Resident),
			PropHeapTotalMemory:     megabytes(stats.HeapTotal),
			PropHeapUsedMemory:      megabytes(stats.HeapUsed),
		},
	}, "")
}

// TrackSpaceUpdate reports an update of space by did. It also emits
// space_update_app keyed by the space name, so unique users can be counted
// per space; the result is true only if both events were accepted.
func (n *Node) TrackSpaceUpdate(ctx context.Context, address, space, did string) bool {
	ok := n.em.emit(ctx, Event{
		Name:       EventSpaceUpdate,
		Properties: Properties{PropAddress: address, PropSpace: space},
	}, Hash(did))
	byApp := n.TrackSpaceUpdateByApp(ctx, address, space)
	return ok && byApp
}

// TrackSpaceUpdateByApp reports a space update bucketed by the space name.
func (n *Node) TrackSpaceUpdateByApp(ctx context.Context, address, space string) bool {
	return n.em.emit(ctx, Event{
		Name:       EventSpaceUpdateApp,
		Properties: Properties{PropAddress: address, PropSpace: space},
	}, space)
}

// TrackPublicUpdate reports a write to the public store of did.
func (n *Node) TrackPublicUpdate(ctx context.Context, address, did string) bool {
	return n.em.emit(ctx, Event{
		Name:       EventPublicUpdate,
		Properties: Properties{PropAddress: address},
	}, Hash(did))
}

// TrackPrivateUpdate reports a write to the private store of did.
func (n *Node) TrackPrivateUpdate(ctx context.Context, address, did string) bool {
	return n.em.emit(ctx, Event{
		Name:       EventPrivateUpdate,
		Properties: Properties{PropAddress: address},
	}, Hash(did))
}

// TrackRootUpdate reports a write to the root store of did.
// TODO: split by update kind (space added, store linked) once the node exposes it.
func (n *Node) TrackRootUpdate(ctx context.Context, did string) bool {
	return n.em.emit(ctx, Event{
		Name:       EventRootUpdate,
		Properties: Properties{},
	}, Hash(did))
}

// TrackThreadUpdate reports a post to the thread name of space.
func (n *Node) TrackThreadUpdate(ctx context.Context, address, space, name string) bool {
	return n.em.emit(ctx, Event{
		Name:       EventThreadUpdate,
		Properties: Properties{PropAddress: address, PropSpace: space, PropName: name},
	}, "")
}
