package namecheap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaultTTL(t *testing.T) {
	records, err := NewRecordBuilder().A("@", "192.0.2.1").Build()
	require.NoError(t, err)
	require.Len(t, records, 1)

	// 1799 is the registrar's "Automatic" TTL. 1800 renders as "30 min"
	// in its UI; the two are not interchangeable.
	assert.Equal(t, 1799, records[0].TTL)
	assert.Equal(t, DefaultTTL, records[0].TTL)
}

func TestBuilderTTLRange(t *testing.T) {
	for _, ttl := range []int{60, 61, 1799, 3600, 86399, 86400} {
		records, err := NewRecordBuilder().A("@", "192.0.2.1").TTL(ttl).Build()
		require.NoError(t, err, "ttl %d", ttl)
		assert.Equal(t, ttl, records[0].TTL)
	}

	for _, ttl := range []int{-1, 0, 1, 59, 86401, 1 << 20} {
		_, err := NewRecordBuilder().A("@", "192.0.2.1").TTL(ttl).Build()
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "ttl %d", ttl)
		assert.Equal(t, "ttl", ve.Field)
	}
}

func TestBuilderOneRecordPerType(t *testing.T) {
	cases := []struct {
		typ   RecordType
		build func(b *RecordBuilder) *RecordBuilder
	}{
		{TypeA, func(b *RecordBuilder) *RecordBuilder { return b.A("www", "192.0.2.1") }},
		{TypeAAAA, func(b *RecordBuilder) *RecordBuilder { return b.AAAA("www", "2001:db8::1") }},
		{TypeCNAME, func(b *RecordBuilder) *RecordBuilder { return b.CNAME("www", "example.com") }},
		{TypeMX, func(b *RecordBuilder) *RecordBuilder { return b.MX("@", "mail.example.com", 10) }},
		{TypeNS, func(b *RecordBuilder) *RecordBuilder { return b.NS("sub", "ns1.example.com") }},
		{TypeTXT, func(b *RecordBuilder) *RecordBuilder { return b.TXT("@", "v=spf1 -all") }},
		{TypeSRV, func(b *RecordBuilder) *RecordBuilder { return b.SRV("_sip._tcp", "60 5060 sip.example.com", 10) }},
		{TypeURL, func(b *RecordBuilder) *RecordBuilder { return b.URL("go", "https://example.com/") }},
		{TypeURL301, func(b *RecordBuilder) *RecordBuilder { return b.URL301("old", "https://example.com/") }},
		{TypeFRAME, func(b *RecordBuilder) *RecordBuilder { return b.Frame("masked", "https://example.com/") }},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			records, err := tc.build(NewRecordBuilder()).Build()
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tc.typ, records[0].Type)
		})
	}
}

func TestBuilderChainingPreservesOrder(t *testing.T) {
	b := NewRecordBuilder().
		A("@", "192.0.2.1").
		A("www", "192.0.2.1").
		MX("@", "mail.example.com", 10).
		TXT("@", "v=spf1 include:_spf.example.com ~all").
		CNAME("blog", "hosting.example.net").
		AAAA("@", "2001:db8::1")

	records, err := b.Build()
	require.NoError(t, err)
	require.Len(t, records, 6)

	want := []RecordType{TypeA, TypeA, TypeMX, TypeTXT, TypeCNAME, TypeAAAA}
	for i, typ := range want {
		assert.Equal(t, typ, records[i].Type, "position %d", i)
	}
	assert.Equal(t, "blog", records[4].Name)
}

func TestBuilderValidation(t *testing.T) {
	cases := []struct {
		name  string
		b     *RecordBuilder
		field string
	}{
		{"a rejects hostname", NewRecordBuilder().A("@", "not-an-ip"), "address"},
		{"a rejects ipv6", NewRecordBuilder().A("@", "2001:db8::1"), "address"},
		{"aaaa rejects ipv4", NewRecordBuilder().AAAA("@", "192.0.2.1"), "address"},
		{"cname rejects root", NewRecordBuilder().CNAME("@", "example.com"), "name"},
		{"mx rejects negative priority", NewRecordBuilder().MX("@", "mail.example.com", -1), "priority"},
		{"empty name", NewRecordBuilder().A("", "192.0.2.1"), "name"},
		{"empty target", NewRecordBuilder().CNAME("www", ""), "address"},
		{"ttl before records", NewRecordBuilder().TTL(300), "ttl"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestBuilderKeepsFirstError(t *testing.T) {
	b := NewRecordBuilder().
		A("@", "bogus").
		A("www", "also-bogus").
		TXT("@", "fine")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
	assert.Equal(t, 0, b.Len())
}

func TestBuilderAddCustomRecord(t *testing.T) {
	rec := Record{Name: "@", Type: TypeMX, Address: "mail.example.com", TTL: 3600, MXPref: 20}
	records, err := NewRecordBuilder().Add(rec).Build()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3600, records[0].TTL)
	assert.Equal(t, 20, records[0].MXPref)
}

func TestBuilderBuildCopies(t *testing.T) {
	b := NewRecordBuilder().A("@", "192.0.2.1")
	first, err := b.Build()
	require.NoError(t, err)

	b.TXT("@", "later")
	second, err := b.Build()
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestRecordKeyIdentity(t *testing.T) {
	a := Record{Name: "www", Type: TypeA, Address: "192.0.2.1", TTL: 300}
	b := Record{Name: "www", Type: TypeA, Address: "192.0.2.1", TTL: 86400}
	c := Record{Name: "www", Type: TypeA, Address: "192.0.2.2"}

	if a.Key() != b.Key() {
		t.Fatalf("TTL must not participate in record identity")
	}
	if a.Key() == c.Key() {
		t.Fatalf("address must participate in record identity")
	}
}

func TestIsSupportedRecordType(t *testing.T) {
	for _, typ := range []string{"A", "aaaa", "Cname", "MX", "NS", "TXT", "URL", "URL301", "FRAME", "SRV"} {
		if !IsSupportedRecordType(typ) {
			t.Errorf("expected %q to be supported", typ)
		}
	}
	for _, typ := range []string{"", "CAA", "PTR", "SOA", "bogus"} {
		if IsSupportedRecordType(typ) {
			t.Errorf("expected %q to be unsupported", typ)
		}
	}
}

func TestValidationErrorMessageNamesField(t *testing.T) {
	_, err := NewRecordBuilder().A("@", "192.0.2.1").TTL(30).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl")
	assert.Contains(t, err.Error(), fmt.Sprint(MinTTL))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}
