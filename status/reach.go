package status

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-ping/ping"
)

// Reachability periodically pings a host in the background so that
// IsConnected never waits on the network.
type Reachability struct {
	host     string
	interval time.Duration
	timeout  time.Duration
	ok       atomic.Bool

	probe func(host string, timeout time.Duration) error
}

// NewReachability returns a monitor for host. Call Run to start probing.
func NewReachability(host string, interval time.Duration) *Reachability {
	return &Reachability{
		host:     host,
		interval: interval,
		timeout:  2 * time.Second,
		probe:    pingICMP,
	}
}

// OK reports the result of the last probe.
func (r *Reachability) OK() bool {
	return r.ok.Load()
}

// Run probes immediately and then every interval until ctx is done.
func (r *Reachability) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		r.check()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Reachability) check() {
	err := r.probe(r.host, r.timeout)
	ok := err == nil
	if prev := r.ok.Swap(ok); prev != ok {
		if ok {
			log.Printf("status: %s reachable", r.host)
		} else {
			log.Printf("status: %s unreachable: %v", r.host, err)
		}
	}
}

// pingICMP sends a single echo request.
// Note: raw ICMP ping usually requires root privileges.
func pingICMP(host string, timeout time.Duration) error {
	pinger, err := ping.NewPinger(host)
	if err != nil {
		return err
	}
	pinger.SetPrivileged(true)
	pinger.Count = 1
	pinger.Timeout = timeout
	if err := pinger.Run(); err != nil {
		return err
	}
	if pinger.Statistics().PacketsRecv == 0 {
		return fmt.Errorf("no reply from %s", host)
	}
	return nil
}
