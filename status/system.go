package status

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// System reads the local Linux host: the default-route interface address from
// /proc/net/route, free memory from /proc/meminfo and uptime from /proc/uptime.
type System struct {
	procRoot string
	reach    *Reachability
	start    time.Time

	// ifaceAddr resolves an interface's first IPv4 address.
	ifaceAddr func(name string) (string, error)
}

// NewSystem returns a System provider. When reach is non-nil, the host also
// has to answer pings to count as connected.
func NewSystem(reach *Reachability) *System {
	return &System{
		procRoot:  "/proc",
		reach:     reach,
		start:     time.Now(),
		ifaceAddr: interfaceIPv4,
	}
}

// IsConnected reports whether the default route has an IPv4 address and,
// when configured, the reachability probe succeeds.
func (s *System) IsConnected() bool {
	ok, _ := s.Link()
	return ok
}

// Link reads the default-route address once and reports connectivity
// alongside it.
func (s *System) Link() (connected bool, addr string) {
	addr = s.Address()
	if addr == "" {
		return false, ""
	}
	if s.reach != nil && !s.reach.OK() {
		return false, addr
	}
	return true, addr
}

// Address returns the IPv4 address of the default-route interface, or "".
func (s *System) Address() string {
	iface, err := s.defaultInterface()
	if err != nil {
		return ""
	}
	ip, err := s.ifaceAddr(iface)
	if err != nil {
		return ""
	}
	return ip
}

// FreeBytes returns MemAvailable for RegionRAM and SwapFree for RegionSwap.
func (s *System) FreeBytes(r Region) uint64 {
	key := "MemAvailable:"
	if r == RegionSwap {
		key = "SwapFree:"
	}
	kb, err := s.meminfo(key)
	if err != nil {
		return 0
	}
	return kb * 1024
}

// ElapsedSeconds returns the host uptime, or the provider's own age when
// /proc/uptime is unreadable.
func (s *System) ElapsedSeconds() int64 {
	data, err := os.ReadFile(filepath.Join(s.procRoot, "uptime"))
	if err == nil {
		if fields := strings.Fields(string(data)); len(fields) > 0 {
			if up, err := strconv.ParseFloat(fields[0], 64); err == nil {
				return int64(up)
			}
		}
	}
	return int64(time.Since(s.start) / time.Second)
}

func (s *System) meminfo(key string) (uint64, error) {
	data, err := os.ReadFile(filepath.Join(s.procRoot, "meminfo"))
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != key {
			continue
		}
		return strconv.ParseUint(fields[1], 10, 64)
	}
	return 0, fmt.Errorf("%s not found in meminfo", key)
}

// defaultInterface finds the interface carrying the 0.0.0.0/0 route.
func (s *System) defaultInterface() (string, error) {
	f, err := os.Open(filepath.Join(s.procRoot, "net", "route"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Scan() // header
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 8 {
			continue
		}
		if fields[1] == "00000000" && fields[7] == "00000000" {
			return fields[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("WAN interface not found")
}

func interfaceIPv4(name string) (string, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return "", err
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil {
			return ipnet.IP.String(), nil
		}
	}
	return "", fmt.Errorf("%s has no IPv4 address", name)
}
