// Package status supplies the Status Snapshot shown on the status pages.
//
// Providers are best-effort reads that return immediately; a provider that
// cannot answer reports "disconnected" or zero rather than an error.
package status

import (
	"sync"
	"time"
)

// Region is a memory pool reported on the status page.
type Region int

const (
	RegionRAM Region = iota
	RegionSwap
)

// Regions lists the pools in display order.
var Regions = []Region{RegionRAM, RegionSwap}

func (r Region) String() string {
	switch r {
	case RegionRAM:
		return "ram"
	case RegionSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Providers are the read-only data sources behind a Snapshot.
type Providers interface {
	IsConnected() bool
	Address() string
	FreeBytes(r Region) uint64
	ElapsedSeconds() int64
}

// linkReader is implemented by providers that derive connectivity from the
// address, so both come from the same read.
type linkReader interface {
	Link() (connected bool, addr string)
}

// Snapshot is one reading of all providers. It is recomputed for every
// render and never stored.
type Snapshot struct {
	Connected bool
	Address   string
	Free      []uint64 // indexed like Regions
	Uptime    time.Duration
}

// Take reads every provider once.
func Take(p Providers) Snapshot {
	s := Snapshot{
		Free:   make([]uint64, len(Regions)),
		Uptime: time.Duration(p.ElapsedSeconds()) * time.Second,
	}
	if l, ok := p.(linkReader); ok {
		var addr string
		if s.Connected, addr = l.Link(); s.Connected {
			s.Address = addr
		}
	} else if s.Connected = p.IsConnected(); s.Connected {
		s.Address = p.Address()
	}
	for i, r := range Regions {
		s.Free[i] = p.FreeBytes(r)
	}
	return s
}

// Fixed is a Providers with values set by the caller. It is safe to update
// while a render task reads it.
type Fixed struct {
	mu        sync.Mutex
	connected bool
	addr      string
	free      map[Region]uint64
	elapsed   int64
}

// NewFixed returns a Fixed provider.
func NewFixed(connected bool, addr string, ram, swap uint64, elapsed int64) *Fixed {
	return &Fixed{
		connected: connected,
		addr:      addr,
		free:      map[Region]uint64{RegionRAM: ram, RegionSwap: swap},
		elapsed:   elapsed,
	}
}

func (f *Fixed) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *Fixed) Address() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addr
}

func (f *Fixed) FreeBytes(r Region) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.free[r]
}

func (f *Fixed) ElapsedSeconds() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elapsed
}

// SetConnected updates the connectivity reading.
func (f *Fixed) SetConnected(connected bool) {
	f.mu.Lock()
	f.connected = connected
	f.mu.Unlock()
}

// SetElapsed updates the uptime reading.
func (f *Fixed) SetElapsed(sec int64) {
	f.mu.Lock()
	f.elapsed = sec
	f.mu.Unlock()
}
