package analytics

import "context"

// API reports public API request outcomes. Every event carries the caller's
// hostname as properties.origin and is bucketed by it as anonymous id.
type API struct {
	em *emitter
}

func (a *API) track(ctx context.Context, name string, props Properties, status any, origin string) bool {
	host := Domain(origin)
	props[PropStatus] = status
	props[PropOrigin] = host
	return a.em.emit(ctx, Event{Name: name, Properties: props}, host)
}

// TrackListSpaces reports a list-spaces request for address.
func (a *API) TrackListSpaces(ctx context.Context, address string, status any, origin string) bool {
	return a.track(ctx, EventAPIListSpaces, Properties{PropAddress: address}, status, origin)
}

// TrackGetConfig reports a get-config request for address.
func (a *API) TrackGetConfig(ctx context.Context, address string, status any, origin string) bool {
	return a.track(ctx, EventAPIGetConfig, Properties{PropAddress: address}, status, origin)
}

// TrackGetThread reports a get-thread request for address.
func (a *API) TrackGetThread(ctx context.Context, address string, status any, origin string) bool {
	return a.track(ctx, EventAPIGetThread, Properties{PropAddress: address}, status, origin)
}

// TrackGetSpace reports a get-space request. spaceExisted is sent as
// profile_existed, the key the dashboards were built on.
func (a *API) TrackGetSpace(ctx context.Context, address, name string, spaceExisted bool, status any, origin string) bool {
	return a.track(ctx, EventAPIGetSpace, Properties{
		PropAddress:        address,
		PropName:           name,
		PropProfileExisted: spaceExisted,
	}, status, origin)
}

// TrackGetProfile reports a get-profile request for address.
func (a *API) TrackGetProfile(ctx context.Context, address string, profileExisted bool, status any, origin string) bool {
	return a.track(ctx, EventAPIGetProfile, Properties{
		PropAddress:        address,
		PropProfileExisted: profileExisted,
	}, status, origin)
}

// TrackGetProfiles reports a batch get-profiles request.
func (a *API) TrackGetProfiles(ctx context.Context, status any, origin string) bool {
	return a.track(ctx, EventAPIGetProfiles, Properties{}, status, origin)
}
