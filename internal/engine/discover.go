package engine

import (
	"sort"
	"time"

	"github.com/tonhe/flo/internal/creds"
)

// DiscoveredInterface holds the metadata for a single interface found via SNMP.
type DiscoveredInterface struct {
	IfIndex     int
	Name        string
	Description string
	Alias       string
	Speed       uint64
	Status      string
}

// DiscoverInterfaces walks a device's interface table and returns every
// interface sorted by ifIndex.
func DiscoverInterfaces(host string, port int, cred *creds.Credential) ([]DiscoveredInterface, error) {
	src, err := NewSNMPSource(host, port, cred, 10*time.Second)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	byIndex := src.discover(true)
	result := make([]DiscoveredInterface, 0, len(byIndex))
	for _, iface := range byIndex {
		result = append(result, *iface)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IfIndex < result[j].IfIndex
	})
	return result, nil
}
