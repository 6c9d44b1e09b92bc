package namecheap

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// RecordType enumerates the host record types the registrar accepts.
type RecordType string

const (
	TypeA      RecordType = "A"
	TypeAAAA   RecordType = "AAAA"
	TypeCNAME  RecordType = "CNAME"
	TypeMX     RecordType = "MX"
	TypeNS     RecordType = "NS"
	TypeTXT    RecordType = "TXT"
	TypeURL    RecordType = "URL"
	TypeURL301 RecordType = "URL301"
	TypeFRAME  RecordType = "FRAME"
	TypeSRV    RecordType = "SRV"
)

// recordTypes is the accepted set, in the registrar's documented order.
var recordTypes = []RecordType{
	TypeA, TypeAAAA, TypeCNAME, TypeMX, TypeNS,
	TypeTXT, TypeURL, TypeURL301, TypeFRAME, TypeSRV,
}

// IsSupportedRecordType reports whether t names a record type the
// registrar's setHosts command accepts.
func IsSupportedRecordType(t string) bool {
	u := RecordType(strings.ToUpper(strings.TrimSpace(t)))
	for _, rt := range recordTypes {
		if u == rt {
			return true
		}
	}
	return false
}

const (
	// DefaultTTL is the registrar's "Automatic" TTL. The UI displays 1800
	// as "30 min" and 1799 as "Automatic"; the off-by-one is deliberate
	// registrar behavior and must not be rounded to 1800.
	DefaultTTL = 1799

	MinTTL = 60
	MaxTTL = 86400
)

// Record is one DNS host record. The registrar has no stable per-record
// ID, so identity for merge purposes is the (Name, Type, Address) triple.
type Record struct {
	// Name is the host label relative to the domain; "@" is the root.
	Name string
	Type RecordType
	// Address holds the record value: an IP for A/AAAA, a target host for
	// CNAME/NS/MX, text for TXT, a destination for URL/URL301/FRAME, and
	// "priority weight port target" for SRV.
	Address string
	// TTL in seconds, within [MinTTL, MaxTTL]. Zero means DefaultTTL.
	TTL int
	// MXPref is the priority for MX and SRV records.
	MXPref int
}

// Key is the merge identity of the record.
func (r Record) Key() string {
	return r.Name + "\x00" + string(r.Type) + "\x00" + r.Address
}

// normalize validates the record in place and applies the default TTL.
func (r *Record) normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty (use @ for the root)"}
	}
	if !IsSupportedRecordType(string(r.Type)) {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported record type %q", r.Type)}
	}
	r.Type = RecordType(strings.ToUpper(string(r.Type)))
	r.Address = strings.TrimSpace(r.Address)
	if r.Address == "" {
		return &ValidationError{Field: "address", Reason: "must not be empty"}
	}
	if r.TTL == 0 {
		r.TTL = DefaultTTL
	}
	if err := validateTTL(r.TTL); err != nil {
		return err
	}

	switch r.Type {
	case TypeA:
		ip := net.ParseIP(r.Address)
		if ip == nil || ip.To4() == nil {
			return &ValidationError{Field: "address", Reason: fmt.Sprintf("%q is not a valid IPv4 address", r.Address)}
		}
	case TypeAAAA:
		ip := net.ParseIP(r.Address)
		if ip == nil || ip.To4() != nil || !strings.Contains(r.Address, ":") {
			return &ValidationError{Field: "address", Reason: fmt.Sprintf("%q is not a valid IPv6 address", r.Address)}
		}
	case TypeCNAME:
		if r.Name == "@" {
			return &ValidationError{Field: "name", Reason: "CNAME records cannot be created for the root domain (@)"}
		}
	case TypeMX, TypeSRV:
		if r.MXPref < 0 {
			return &ValidationError{Field: "priority", Reason: "must not be negative"}
		}
	}
	return nil
}

func validateTTL(ttl int) error {
	if ttl < MinTTL || ttl > MaxTTL {
		return &ValidationError{
			Field:  "ttl",
			Reason: fmt.Sprintf("%d is outside [%d, %d]", ttl, MinTTL, MaxTTL),
		}
	}
	return nil
}

func parseTTL(s string) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return DefaultTTL, nil
	}
	ttl, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: "ttl", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	if err := validateTTL(ttl); err != nil {
		return 0, err
	}
	return ttl, nil
}
