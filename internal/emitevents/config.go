// Package emitevents fires every event of the beacon taxonomy once, to check
// a write key and the ingestion pipeline end to end.
package emitevents

import "time"

// Config holds the options of one run.
type Config struct {
	WriteKey   string        // Segment write key; required unless DryRun
	Endpoint   string        // optional Segment endpoint override
	Origin     string        // origin URL reported by API events
	DID        string        // DID hashed into node events
	Address    string        // database address used by node and API events
	Space      string        // space name used by space and thread events
	DryRun     bool          // log payloads instead of sending them
	Timeout    time.Duration // upper bound for flushing the client
	AppVersion string
}

// Result summarizes a run.
type Result struct {
	Attempted int
	Forwarded int
	Failed    []string // event names the emitter did not forward
	Logged    int      // events printed by a dry run; 0 for live runs
}
