// Package metrics provides observability for the pet server.
// Counters are updated by the engine and gateway; a JSON snapshot is served over HTTP.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Collector gathers runtime counters.
type Collector struct {
	// Command metrics
	CommandsHandled int64
	CommandErrors   int64

	// Sweep metrics
	SweepRuns      int64
	StatsDecayed   int64
	PetsPenalized  int64
	PetsRemoved    int64
	NotifyFailures int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64

	StartTime time.Time
}

var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordCommand records a handled gateway command and whether it errored.
func (c *Collector) RecordCommand(failed bool) {
	atomic.AddInt64(&c.CommandsHandled, 1)
	if failed {
		atomic.AddInt64(&c.CommandErrors, 1)
	}
}

// RecordSweep records one sweep pass and its outcome counts.
func (c *Collector) RecordSweep(decayed, penalized, removed int64) {
	atomic.AddInt64(&c.SweepRuns, 1)
	atomic.AddInt64(&c.StatsDecayed, decayed)
	atomic.AddInt64(&c.PetsPenalized, penalized)
	atomic.AddInt64(&c.PetsRemoved, removed)
}

// RecordNotifyFailure records an undeliverable removal notice.
func (c *Collector) RecordNotifyFailure() {
	atomic.AddInt64(&c.NotifyFailures, 1)
}

// ClientConnected tracks a new WebSocket connection.
func (c *Collector) ClientConnected() {
	atomic.AddInt64(&c.WSConnectionsActive, 1)
}

// ClientDisconnected tracks a closed WebSocket connection.
func (c *Collector) ClientDisconnected() {
	atomic.AddInt64(&c.WSConnectionsActive, -1)
}

// RecordMessageIn tracks an inbound WebSocket message.
func (c *Collector) RecordMessageIn() {
	atomic.AddInt64(&c.WSMessagesIn, 1)
}

// RecordMessageOut tracks an outbound WebSocket message.
func (c *Collector) RecordMessageOut() {
	atomic.AddInt64(&c.WSMessagesOut, 1)
}

// Snapshot is the JSON shape served by the metrics endpoint.
type Snapshot struct {
	UptimeSeconds   int64 `json:"uptime_seconds"`
	CommandsHandled int64 `json:"commands_handled"`
	CommandErrors   int64 `json:"command_errors"`
	SweepRuns       int64 `json:"sweep_runs"`
	StatsDecayed    int64 `json:"stats_decayed"`
	PetsPenalized   int64 `json:"pets_penalized"`
	PetsRemoved     int64 `json:"pets_removed"`
	NotifyFailures  int64 `json:"notify_failures"`
	WSConnections   int64 `json:"ws_connections_active"`
	WSMessagesIn    int64 `json:"ws_messages_in"`
	WSMessagesOut   int64 `json:"ws_messages_out"`
}

// TakeSnapshot copies the current counter values.
func (c *Collector) TakeSnapshot() Snapshot {
	return Snapshot{
		UptimeSeconds:   int64(time.Since(c.StartTime).Seconds()),
		CommandsHandled: atomic.LoadInt64(&c.CommandsHandled),
		CommandErrors:   atomic.LoadInt64(&c.CommandErrors),
		SweepRuns:       atomic.LoadInt64(&c.SweepRuns),
		StatsDecayed:    atomic.LoadInt64(&c.StatsDecayed),
		PetsPenalized:   atomic.LoadInt64(&c.PetsPenalized),
		PetsRemoved:     atomic.LoadInt64(&c.PetsRemoved),
		NotifyFailures:  atomic.LoadInt64(&c.NotifyFailures),
		WSConnections:   atomic.LoadInt64(&c.WSConnectionsActive),
		WSMessagesIn:    atomic.LoadInt64(&c.WSMessagesIn),
		WSMessagesOut:   atomic.LoadInt64(&c.WSMessagesOut),
	}
}

// Handler serves the metrics snapshot as JSON.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(collector.TakeSnapshot())
	})
}
