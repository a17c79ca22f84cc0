package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/udplog/internal/logging"
)

const (
	// ServiceType is the mDNS service type advertised by UDP logger devices
	ServiceType = "_esp32udplog._udp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultBrowseTimeout is how long a discovery session collects
	// advertisements before returning its snapshot
	DefaultBrowseTimeout = 2500 * time.Millisecond

	// DefaultDevicePort is the command port devices listen on when the
	// advertisement carries no port
	DefaultDevicePort = 9998
)

// Browser handles mDNS device discovery
type Browser struct {
	// Timeout is the duration of a single discovery session
	Timeout time.Duration
}

// NewBrowser creates a new mDNS browser with default settings
func NewBrowser() *Browser {
	return &Browser{
		Timeout: DefaultBrowseTimeout,
	}
}

// Browse discovers all UDP logger devices on the local network.
// It collects advertisements for the configured timeout and returns a
// deduplicated snapshot sorted by case-insensitive instance name.
// An empty result is not an error; the caller decides whether it is fatal.
func (b *Browser) Browse(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	// Deduplicate by instance name; a later advertisement replaces an
	// earlier one from the same device.
	byName := make(map[string]*Device)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			device := parseServiceEntry(entry)
			if device == nil {
				logging.Debug("Ignoring service entry",
					zap.String("instance", entry.Instance),
					zap.String("hostname", entry.HostName),
				)
				continue
			}
			logging.Debug("Discovered device",
				zap.String("name", device.Name),
				zap.String("ip", device.IP),
				zap.Int("port", device.Port),
			)
			byName[device.Name] = device
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the timeout, then for the entry channel to drain
	<-ctx.Done()
	<-done

	devices := make([]*Device, 0, len(byName))
	for _, d := range byName {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		return strings.ToLower(devices[i].Name) < strings.ToLower(devices[j].Name)
	})

	return devices, nil
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Entries without an instance name or a resolvable IPv4 address are dropped.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	name := entry.Instance
	if name == "" {
		// Fall back to stripping the service suffix from the FQDN
		name = strings.TrimSuffix(entry.ServiceInstanceName(),
			"."+ServiceType+"."+ServiceDomain)
	}
	if name == "" {
		return nil
	}

	// Devices without an IPv4 address cannot be addressed by this tool
	var ip string
	for _, addr := range entry.AddrIPv4 {
		if v4 := addr.To4(); v4 != nil {
			ip = v4.String()
			break
		}
	}
	if ip == "" {
		return nil
	}

	host := strings.TrimSuffix(entry.HostName, ".")
	if host == "" {
		host = name + ".local"
	}

	port := entry.Port
	if port == 0 {
		port = DefaultDevicePort
	}

	return &Device{
		Name: name,
		Host: host,
		IP:   ip,
		Port: port,
	}
}

// Find resolves a device by instance name: exact match first, then a
// case-insensitive fallback. The returned error names the list command so
// the user knows how to see what was discovered.
func Find(devices []*Device, name string) (*Device, error) {
	for _, d := range devices {
		if d.Name == name {
			return d, nil
		}
	}
	for _, d := range devices {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("device not found: %s (run 'udplog-ctl list' to see discovered devices)", name)
}

// Discover is a convenience function to browse with a custom timeout
func Discover(timeout time.Duration) ([]*Device, error) {
	browser := NewBrowser()
	browser.Timeout = timeout
	return browser.Browse(context.Background())
}
