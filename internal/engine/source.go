package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/tonhe/flo/internal/creds"
)

// SNMP OIDs for interface monitoring.
const (
	OIDifName        = "1.3.6.1.2.1.31.1.1.1.1"
	OIDifDescr       = "1.3.6.1.2.1.2.2.1.2"
	OIDifAlias       = "1.3.6.1.2.1.31.1.1.1.18"
	OIDifHCInOctets  = "1.3.6.1.2.1.31.1.1.1.6"
	OIDifHCOutOctets = "1.3.6.1.2.1.31.1.1.1.10"
	OIDifHighSpeed   = "1.3.6.1.2.1.31.1.1.1.15"
	OIDifOperStatus  = "1.3.6.1.2.1.2.2.1.8"
	OIDsysDescr      = "1.3.6.1.2.1.1.1.0"
)

// Source reads interface data from one device.
type Source interface {
	// Interfaces maps interface names, and descriptions where they differ,
	// to the interface they identify.
	Interfaces() (map[string]DiscoveredInterface, error)
	Counters(ifIndex int) (CounterSample, error)
	Status(ifIndex int) (string, error)
	Close() error
}

// SNMPSource is a Source backed by a connected gosnmp client.
type SNMPSource struct {
	client *gosnmp.GoSNMP
	now    func() time.Time
}

// newSNMPClient builds an unconnected client for cred.
func newSNMPClient(host string, port int, cred *creds.Credential, timeout time.Duration) (*gosnmp.GoSNMP, error) {
	if port == 0 {
		port = 161
	}
	client := &gosnmp.GoSNMP{
		Target:  host,
		Port:    uint16(port),
		Timeout: timeout,
		Retries: 2,
	}

	switch cred.Version {
	case "1", "2c":
		client.Version = gosnmp.Version2c
		if cred.Version == "1" {
			client.Version = gosnmp.Version1
		}
		client.Community = cred.Community
	case "3":
		client.Version = gosnmp.Version3
		client.SecurityModel = gosnmp.UserSecurityModel
		client.MsgFlags = gosnmp.NoAuthNoPriv
		if cred.AuthProto != "" && cred.AuthPass != "" {
			client.MsgFlags = gosnmp.AuthNoPriv
			if cred.PrivProto != "" && cred.PrivPass != "" {
				client.MsgFlags = gosnmp.AuthPriv
			}
		}
		client.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 cred.Username,
			AuthenticationProtocol:   authProtocols[cred.AuthProto],
			AuthenticationPassphrase: cred.AuthPass,
			PrivacyProtocol:          privProtocols[cred.PrivProto],
			PrivacyPassphrase:        cred.PrivPass,
		}
	default:
		return nil, fmt.Errorf("unsupported SNMP version: %s", cred.Version)
	}
	return client, nil
}

// Unknown names map to the zero value, NoAuth / NoPriv.
var (
	authProtocols = map[string]gosnmp.SnmpV3AuthProtocol{
		"MD5":    gosnmp.MD5,
		"SHA":    gosnmp.SHA,
		"SHA256": gosnmp.SHA256,
		"SHA512": gosnmp.SHA512,
	}
	privProtocols = map[string]gosnmp.SnmpV3PrivProtocol{
		"DES":    gosnmp.DES,
		"AES":    gosnmp.AES,
		"AES128": gosnmp.AES,
		"AES192": gosnmp.AES192,
		"AES256": gosnmp.AES256,
	}
)

// NewSNMPSource connects to host with cred.
func NewSNMPSource(host string, port int, cred *creds.Credential, timeout time.Duration) (*SNMPSource, error) {
	client, err := newSNMPClient(host, port, cred, timeout)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", host, err)
	}
	return &SNMPSource{client: client, now: time.Now}, nil
}

// discover walks the interface table. Alias and status walks are skipped
// unless full is set.
func (s *SNMPSource) discover(full bool) map[int]*DiscoveredInterface {
	byIndex := make(map[int]*DiscoveredInterface)
	entry := func(idx int) *DiscoveredInterface {
		if _, ok := byIndex[idx]; !ok {
			byIndex[idx] = &DiscoveredInterface{IfIndex: idx}
		}
		return byIndex[idx]
	}

	walkOID(s.client, OIDifName, func(idx int, val string) {
		entry(idx).Name = val
	})
	walkOID(s.client, OIDifDescr, func(idx int, val string) {
		iface := entry(idx)
		if iface.Name == "" {
			iface.Name = val
		}
		iface.Description = val
	})
	walkOID(s.client, OIDifHighSpeed, func(idx int, val string) {
		if iface, ok := byIndex[idx]; ok {
			iface.Speed, _ = strconv.ParseUint(val, 10, 64)
		}
	})
	if !full {
		return byIndex
	}
	walkOID(s.client, OIDifAlias, func(idx int, val string) {
		if iface, ok := byIndex[idx]; ok {
			iface.Alias = val
		}
	})
	walkOID(s.client, OIDifOperStatus, func(idx int, val string) {
		if iface, ok := byIndex[idx]; ok {
			v, _ := strconv.Atoi(val)
			iface.Status = operStatus(int64(v))
		}
	})
	return byIndex
}

// Interfaces resolves dashboard interface names, which may be either the
// ifName or the ifDescr, to ifIndex values.
func (s *SNMPSource) Interfaces() (map[string]DiscoveredInterface, error) {
	byIndex := s.discover(false)
	if len(byIndex) == 0 {
		return nil, fmt.Errorf("%s: interface table is empty", s.client.Target)
	}
	result := make(map[string]DiscoveredInterface, len(byIndex))
	for _, iface := range byIndex {
		result[iface.Name] = *iface
		if iface.Description != "" && iface.Description != iface.Name {
			result[iface.Description] = *iface
		}
	}
	return result, nil
}

// Counters fetches the 64-bit in/out octet counters of one interface.
func (s *SNMPSource) Counters(ifIndex int) (CounterSample, error) {
	inOID := fmt.Sprintf("%s.%d", OIDifHCInOctets, ifIndex)
	outOID := fmt.Sprintf("%s.%d", OIDifHCOutOctets, ifIndex)

	result, err := s.client.Get([]string{inOID, outOID})
	if err != nil {
		return CounterSample{}, err
	}

	cs := CounterSample{Timestamp: s.now()}
	for _, v := range result.Variables {
		switch strings.TrimPrefix(v.Name, ".") {
		case inOID:
			cs.InOctets = gosnmp.ToBigInt(v.Value).Uint64()
		case outOID:
			cs.OutOctets = gosnmp.ToBigInt(v.Value).Uint64()
		}
	}
	return cs, nil
}

// Status fetches ifOperStatus of one interface.
func (s *SNMPSource) Status(ifIndex int) (string, error) {
	oid := fmt.Sprintf("%s.%d", OIDifOperStatus, ifIndex)
	result, err := s.client.Get([]string{oid})
	if err != nil {
		return "unknown", err
	}
	if len(result.Variables) == 0 {
		return "unknown", nil
	}
	return operStatus(gosnmp.ToBigInt(result.Variables[0].Value).Int64()), nil
}

// SysDescr fetches the device description. It doubles as a reachability
// check.
func (s *SNMPSource) SysDescr() (string, error) {
	result, err := s.client.Get([]string{OIDsysDescr})
	if err != nil {
		return "", err
	}
	for _, pdu := range result.Variables {
		if b, ok := pdu.Value.([]byte); ok {
			return string(b), nil
		}
		return fmt.Sprint(pdu.Value), nil
	}
	return "", nil
}

func (s *SNMPSource) Close() error {
	if s.client.Conn == nil {
		return nil
	}
	return s.client.Conn.Close()
}

func operStatus(v int64) string {
	switch v {
	case 1:
		return "up"
	case 2:
		return "down"
	case 3:
		return "testing"
	default:
		return "unknown"
	}
}

// walkOID bulk-walks oid and calls handler with the ifIndex taken from the
// last OID component and the value rendered as a string.
func walkOID(client *gosnmp.GoSNMP, oid string, handler func(int, string)) {
	_ = client.BulkWalk(oid, func(pdu gosnmp.SnmpPDU) error {
		idx, err := strconv.Atoi(pdu.Name[strings.LastIndexByte(pdu.Name, '.')+1:])
		if err != nil {
			return nil
		}
		var val string
		switch pdu.Type {
		case gosnmp.OctetString:
			b, _ := pdu.Value.([]byte)
			val = string(b)
		default:
			val = gosnmp.ToBigInt(pdu.Value).String()
		}
		handler(idx, val)
		return nil
	})
}
