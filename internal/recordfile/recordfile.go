// Package recordfile reads and writes host record files in two formats:
// a JSON document and a looser tab- or space-separated text table. Both
// convert to and from the client's host records so the same file can be
// exported, edited and applied back.
package recordfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nctl-dev/nctl/namecheap"
)

// Entry is one record row of a records file. Address carries the record
// payload; for MX and SRV the priority lives in MXPref, matching the
// registrar's host model.
type Entry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	TTL     int    `json:"ttl,omitempty"`
	MXPref  *int   `json:"mx_pref,omitempty"`
}

// File is the JSON document shape.
type File struct {
	Domain  string  `json:"domain,omitempty"`
	Records []Entry `json:"records"`
}

// Load reads a records file, picking the format by extension: .json is
// parsed as a File document, anything else as the text table.
func Load(path string) (File, []Issue, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := LoadJSON(path)
		return f, nil, err
	}
	rf, err := os.Open(path)
	if err != nil {
		return File{}, nil, err
	}
	defer rf.Close()
	entries, issues, err := Parse(rf)
	if err != nil {
		return File{}, issues, err
	}
	return File{Records: entries}, issues, nil
}

// LoadJSON reads the JSON document format.
func LoadJSON(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read records file: %w", err)
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("parse records json: %w", err)
	}
	return f, nil
}

// WriteJSON writes the document with stable, diff-friendly formatting.
func WriteJSON(path string, f File) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ToRecords converts file entries into host records. Unknown record types
// are rejected here rather than at submit time so the error names the
// offending row.
func (f File) ToRecords() ([]namecheap.Record, error) {
	records := make([]namecheap.Record, 0, len(f.Records))
	for i, e := range f.Records {
		typ := strings.ToUpper(strings.TrimSpace(e.Type))
		if !namecheap.IsSupportedRecordType(typ) {
			return nil, fmt.Errorf("record %d: unsupported type %q", i+1, e.Type)
		}
		rec := namecheap.Record{
			Name:    strings.TrimSpace(e.Name),
			Type:    namecheap.RecordType(typ),
			Address: strings.TrimSpace(e.Address),
			TTL:     e.TTL,
		}
		if e.MXPref != nil {
			rec.MXPref = *e.MXPref
		}
		records = append(records, rec)
	}
	return records, nil
}

// FromRecords builds a File document from live host records.
func FromRecords(domain string, records []namecheap.Record) File {
	f := File{Domain: domain, Records: make([]Entry, 0, len(records))}
	for _, r := range records {
		e := Entry{
			Name:    r.Name,
			Type:    string(r.Type),
			Address: r.Address,
			TTL:     r.TTL,
		}
		if r.Type == namecheap.TypeMX || r.Type == namecheap.TypeSRV {
			pref := r.MXPref
			e.MXPref = &pref
		}
		f.Records = append(f.Records, e)
	}
	return f
}
