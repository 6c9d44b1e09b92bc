package namecheap

import "fmt"

// RecordBuilder accumulates a desired host record set through fluent
// chaining. Each method validates and appends one record; the first
// validation failure is retained and reported by Build, so a chain never
// needs intermediate error checks.
//
// The built slice is the complete record set to submit: the registrar's
// setHosts replaces everything, so any live record not present here is
// deleted on submit. Seed the builder with the records to keep (see
// DNSService.GetHosts) before appending new ones.
type RecordBuilder struct {
	records []Record
	err     error
}

// NewRecordBuilder returns an empty builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

func (b *RecordBuilder) add(r Record) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if err := r.normalize(); err != nil {
		b.err = fmt.Errorf("record %d (%s %s): %w", len(b.records)+1, r.Type, r.Name, err)
		return b
	}
	b.records = append(b.records, r)
	return b
}

// Add appends an already-populated record, applying the same validation
// as the typed methods. Use it for custom TTLs or records loaded from
// files.
func (b *RecordBuilder) Add(r Record) *RecordBuilder {
	return b.add(r)
}

// A appends an IPv4 address record.
func (b *RecordBuilder) A(name, ip string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeA, Address: ip})
}

// AAAA appends an IPv6 address record.
func (b *RecordBuilder) AAAA(name, ip string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeAAAA, Address: ip})
}

// CNAME appends an alias record. The root label "@" is rejected.
func (b *RecordBuilder) CNAME(name, target string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeCNAME, Address: target})
}

// MX appends a mail exchanger record. Lower priority wins.
func (b *RecordBuilder) MX(name, server string, priority int) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeMX, Address: server, MXPref: priority})
}

// NS appends a nameserver delegation record.
func (b *RecordBuilder) NS(name, nameserver string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeNS, Address: nameserver})
}

// TXT appends a text record.
func (b *RecordBuilder) TXT(name, value string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeTXT, Address: value})
}

// SRV appends a service locator record. value carries the registrar's
// "weight port target" form; priority goes in the preference field.
func (b *RecordBuilder) SRV(name, value string, priority int) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeSRV, Address: value, MXPref: priority})
}

// URL appends an unmasked redirect record.
func (b *RecordBuilder) URL(name, target string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeURL, Address: target})
}

// URL301 appends a permanent redirect record.
func (b *RecordBuilder) URL301(name, target string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeURL301, Address: target})
}

// Frame appends a masked (iframe) redirect record.
func (b *RecordBuilder) Frame(name, target string) *RecordBuilder {
	return b.add(Record{Name: name, Type: TypeFRAME, Address: target})
}

// TTL overrides the TTL of the most recently appended record.
func (b *RecordBuilder) TTL(seconds int) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if len(b.records) == 0 {
		b.err = &ValidationError{Field: "ttl", Reason: "TTL() called before any record was added"}
		return b
	}
	if err := validateTTL(seconds); err != nil {
		b.err = err
		return b
	}
	b.records[len(b.records)-1].TTL = seconds
	return b
}

// Len reports how many records have been accepted so far.
func (b *RecordBuilder) Len() int { return len(b.records) }

// Build returns the accumulated records in call order, or the first
// validation error encountered while chaining.
func (b *RecordBuilder) Build() ([]Record, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out, nil
}
