// Package observability aggregates relay counters for logging and the
// stats endpoint.
package observability

import (
	"sync/atomic"
)

// Monitor collects lock-free counters from the hot paths. All methods are
// safe for concurrent use.
type Monitor struct {
	connectionsOpened uint64
	connectionsClosed uint64
	broadcastEvents   uint64
	sendFailures      uint64
	messagesPersisted uint64
	messagesCensored  uint64
	historyReplays    uint64
	storeFailures     uint64
}

func NewMonitor() *Monitor { return &Monitor{} }

func (m *Monitor) ConnectionOpened() { atomic.AddUint64(&m.connectionsOpened, 1) }
func (m *Monitor) ConnectionClosed() { atomic.AddUint64(&m.connectionsClosed, 1) }
func (m *Monitor) BroadcastEvent() { atomic.AddUint64(&m.broadcastEvents, 1) }
func (m *Monitor) SendFailure() { atomic.AddUint64(&m.sendFailures, 1) }
func (m *Monitor) MessagePersisted() { atomic.AddUint64(&m.messagesPersisted, 1) }
func (m *Monitor) MessageCensored() { atomic.AddUint64(&m.messagesCensored, 1) }
func (m *Monitor) HistoryReplayed() { atomic.AddUint64(&m.historyReplays, 1) }
func (m *Monitor) StoreFailure() { atomic.AddUint64(&m.storeFailures, 1) }

// Stats is a point-in-time snapshot exposed on /api/stats and logged by the
// stats reporter worker.
type Stats struct {
	ActiveConnections uint64 `json:"active_connections"`
	ConnectionsOpened uint64 `json:"connections_opened"`
	ConnectionsClosed uint64 `json:"connections_closed"`
	BroadcastEvents   uint64 `json:"broadcast_events"`
	SendFailures      uint64 `json:"send_failures"`
	MessagesPersisted uint64 `json:"messages_persisted"`
	MessagesCensored  uint64 `json:"messages_censored"`
	HistoryReplays    uint64 `json:"history_replays"`
	StoreFailures     uint64 `json:"store_failures"`
}

func (m *Monitor) Snapshot() Stats {
	opened := atomic.LoadUint64(&m.connectionsOpened)
	closed := atomic.LoadUint64(&m.connectionsClosed)
	active := uint64(0)
	if opened > closed {
		active = opened - closed
	}
	return Stats{
		ActiveConnections: active,
		ConnectionsOpened: opened,
		ConnectionsClosed: closed,
		BroadcastEvents:   atomic.LoadUint64(&m.broadcastEvents),
		SendFailures:      atomic.LoadUint64(&m.sendFailures),
		MessagesPersisted: atomic.LoadUint64(&m.messagesPersisted),
		MessagesCensored:  atomic.LoadUint64(&m.messagesCensored),
		HistoryReplays:    atomic.LoadUint64(&m.historyReplays),
		StoreFailures:     atomic.LoadUint64(&m.storeFailures),
	}
}
