package recordfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nctl-dev/nctl/namecheap"
)

func TestParsePositionalColumns(t *testing.T) {
	in := `
# zone export
A	@	192.0.2.1
CNAME	www	example.com
TXT	@	"v=spf1 -all"
MX	@	10 mail.example.com
SRV	_sip._tcp	10 60 5060 sip.example.com
`
	entries, issues, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, entries, 5)

	assert.Equal(t, Entry{Type: "A", Name: "@", Address: "192.0.2.1"}, entries[0])
	assert.Equal(t, "example.com", entries[1].Address)

	// TXT quoting is stripped.
	assert.Equal(t, "v=spf1 -all", entries[2].Address)

	// MX and SRV peel the leading priority off the address.
	require.NotNil(t, entries[3].MXPref)
	assert.Equal(t, 10, *entries[3].MXPref)
	assert.Equal(t, "mail.example.com", entries[3].Address)

	require.NotNil(t, entries[4].MXPref)
	assert.Equal(t, 10, *entries[4].MXPref)
	assert.Equal(t, "60 5060 sip.example.com", entries[4].Address)
}

func TestParseHeaderColumns(t *testing.T) {
	in := strings.Join([]string{
		"Type\tName\tAddress\tTTL\tMXPref",
		"A\t@\t192.0.2.1\t300\t",
		"MX\t@\tmail.example.com\t\t20",
	}, "\n")

	entries, issues, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, entries, 2)

	assert.Equal(t, 300, entries[0].TTL)
	require.NotNil(t, entries[1].MXPref)
	assert.Equal(t, 20, *entries[1].MXPref)
	assert.Equal(t, "mail.example.com", entries[1].Address)
}

func TestParseReportsIssues(t *testing.T) {
	in := `
A	@
A	@	192.0.2.1
MX	@	mail-without-priority
`
	entries, issues, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	// The short line is dropped, the bad MX kept with a warning.
	require.Len(t, entries, 2)

	var errs, warns int
	for _, is := range issues {
		switch is.Level {
		case "error":
			errs++
		case "warn":
			warns++
		}
	}
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warns)
	assert.Equal(t, 2, issues[0].Line)
}

func TestRenderRoundTrips(t *testing.T) {
	records := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: 300},
		{Name: "www", Type: namecheap.TypeCNAME, Address: "example.com", TTL: 1799},
		{Name: "@", Type: namecheap.TypeMX, Address: "mail.example.com", TTL: 1799, MXPref: 10},
		{Name: "@", Type: namecheap.TypeTXT, Address: "v=spf1 include:_spf.example.com ~all", TTL: 1799},
	}

	text := Render("example.com", records)
	entries, issues, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Empty(t, issues)

	got, err := File{Records: entries}.ToRecords()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")

	records := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: 300},
		{Name: "_sip._tcp", Type: namecheap.TypeSRV, Address: "60 5060 sip.example.com", TTL: 1799, MXPref: 10},
	}

	require.NoError(t, WriteJSON(path, FromRecords("example.com", records)))

	loaded, issues, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "example.com", loaded.Domain)

	got, err := loaded.ToRecords()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestToRecordsRejectsUnknownType(t *testing.T) {
	f := File{Records: []Entry{
		{Type: "A", Name: "@", Address: "192.0.2.1"},
		{Type: "CAA", Name: "@", Address: `0 issue "ca.example.net"`},
	}}
	_, err := f.ToRecords()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")
	assert.Contains(t, err.Error(), "CAA")
}

func TestCompare(t *testing.T) {
	current := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: 300},
		{Name: "www", Type: namecheap.TypeCNAME, Address: "example.com", TTL: 1799},
		{Name: "old", Type: namecheap.TypeA, Address: "192.0.2.9", TTL: 1799},
	}
	desired := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: 300},
		{Name: "www", Type: namecheap.TypeCNAME, Address: "example.com", TTL: 1799},
		{Name: "api", Type: namecheap.TypeA, Address: "192.0.2.2", TTL: 1799},
	}

	d := Compare(current, desired)
	require.Len(t, d.Keep, 2)
	require.Len(t, d.Remove, 1)
	require.Len(t, d.Add, 1)
	assert.Equal(t, "old", d.Remove[0].Name)
	assert.Equal(t, "api", d.Add[0].Name)
	assert.False(t, d.Empty())
}

func TestCompareTTLChangeIsReplace(t *testing.T) {
	current := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: 300},
	}
	desired := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: 3600},
	}

	d := Compare(current, desired)
	assert.Len(t, d.Remove, 1)
	assert.Len(t, d.Add, 1)
	assert.Empty(t, d.Keep)
}

func TestCompareTreatsZeroTTLAsDefault(t *testing.T) {
	current := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1", TTL: namecheap.DefaultTTL},
	}
	desired := []namecheap.Record{
		{Name: "@", Type: namecheap.TypeA, Address: "192.0.2.1"},
	}

	d := Compare(current, desired)
	assert.True(t, d.Empty())
}
