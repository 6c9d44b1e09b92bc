package recordfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Issue is a non-fatal finding from parsing a text records file. Level is
// "warn" or "error"; rows with error issues are dropped, warns keep the
// row with a best-effort interpretation.
type Issue struct {
	Line    int
	Level   string
	Message string
}

// Parse reads the text table format: one record per line, columns split
// on tabs when present, otherwise on runs of spaces. An optional header
// line ("Type Name Address ...") enables named-column lookup; without it
// columns are positional Type, Name, Address. Blank lines and lines
// starting with # or ; are skipped.
func Parse(r io.Reader) ([]Entry, []Issue, error) {
	var (
		entries []Entry
		issues  []Issue
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var header map[string]int

	for lineNo := 1; sc.Scan(); lineNo++ {
		raw := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, ";") {
			continue
		}

		cols, hadTabs := splitColumns(raw)
		if len(cols) == 0 {
			continue
		}

		if header == nil && looksLikeHeader(cols) {
			header = buildHeader(cols)
			continue
		}

		entry, rowIssues, ok := parseRow(lineNo, cols, hadTabs, header)
		issues = append(issues, rowIssues...)
		if ok {
			entries = append(entries, entry)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, issues, err
	}
	return entries, issues, nil
}

func splitColumns(line string) ([]string, bool) {
	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, true
	}
	return strings.Fields(line), false
}

func looksLikeHeader(cols []string) bool {
	if len(cols) < 3 {
		return false
	}
	return strings.EqualFold(cols[0], "type") &&
		strings.EqualFold(cols[1], "name") &&
		(strings.EqualFold(cols[2], "address") ||
			strings.EqualFold(cols[2], "value") ||
			strings.EqualFold(cols[2], "contents"))
}

func buildHeader(cols []string) map[string]int {
	h := make(map[string]int, len(cols))
	for i, c := range cols {
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return h
}

func parseRow(lineNo int, cols []string, hadTabs bool, header map[string]int) (Entry, []Issue, bool) {
	var issues []Issue

	get := func(key string) (string, bool) {
		if header == nil {
			return "", false
		}
		i, ok := header[key]
		if !ok || i < 0 || i >= len(cols) {
			return "", false
		}
		return strings.TrimSpace(cols[i]), true
	}

	var typ, name, address, ttlRaw, prefRaw string

	if header != nil {
		var ok bool
		typ, ok = get("type")
		if !ok {
			issues = append(issues, Issue{Line: lineNo, Level: "error", Message: "missing column: type"})
			return Entry{}, issues, false
		}
		name, ok = get("name")
		if !ok {
			issues = append(issues, Issue{Line: lineNo, Level: "error", Message: "missing column: name"})
			return Entry{}, issues, false
		}
		address, _ = get("address")
		if address == "" {
			address, _ = get("value")
		}
		if address == "" {
			address, _ = get("contents")
		}
		if address == "" {
			issues = append(issues, Issue{Line: lineNo, Level: "error", Message: "missing column: address"})
			return Entry{}, issues, false
		}
		ttlRaw, _ = get("ttl")
		prefRaw, _ = get("mxpref")
		if prefRaw == "" {
			prefRaw, _ = get("priority")
		}
	} else {
		if len(cols) < 3 {
			issues = append(issues, Issue{Line: lineNo, Level: "error", Message: "expected at least 3 columns: Type Name Address"})
			return Entry{}, issues, false
		}
		typ = cols[0]
		name = cols[1]
		if hadTabs {
			address = strings.Join(cols[2:], "\t")
		} else {
			address = strings.Join(cols[2:], " ")
		}
	}

	typ = strings.ToUpper(strings.TrimSpace(typ))
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if typ == "" || name == "" || address == "" {
		issues = append(issues, Issue{Line: lineNo, Level: "error", Message: "type/name/address must be non-empty"})
		return Entry{}, issues, false
	}

	if typ == "TXT" {
		if len(address) >= 2 && strings.HasPrefix(address, "\"") && strings.HasSuffix(address, "\"") {
			address = strings.TrimSuffix(strings.TrimPrefix(address, "\""), "\"")
		}
	}

	entry := Entry{Type: typ, Name: name, Address: address}

	if ttlRaw != "" {
		v, err := strconv.Atoi(ttlRaw)
		if err != nil {
			issues = append(issues, Issue{Line: lineNo, Level: "warn", Message: fmt.Sprintf("invalid ttl %q: %v", ttlRaw, err)})
		} else {
			entry.TTL = v
		}
	}
	if prefRaw != "" {
		v, err := strconv.Atoi(prefRaw)
		if err != nil {
			issues = append(issues, Issue{Line: lineNo, Level: "warn", Message: fmt.Sprintf("invalid priority %q: %v", prefRaw, err)})
		} else {
			entry.MXPref = &v
		}
	}

	// MX and SRV lines may carry the priority inline as the first address
	// field, the way zone files write them.
	switch typ {
	case "MX":
		if entry.MXPref == nil {
			pref, rest, warn := splitLeadingPriority(address, 1)
			if warn != "" {
				issues = append(issues, Issue{Line: lineNo, Level: "warn", Message: "MX address expects \"<priority> <exchange>\": " + warn})
			} else {
				entry.MXPref = &pref
				entry.Address = rest
			}
		}
	case "SRV":
		if entry.MXPref == nil {
			pref, rest, warn := splitLeadingPriority(address, 3)
			if warn != "" {
				issues = append(issues, Issue{Line: lineNo, Level: "warn", Message: "SRV address expects \"<priority> <weight> <port> <target>\": " + warn})
			} else {
				entry.MXPref = &pref
				entry.Address = rest
			}
		}
	}

	return entry, issues, true
}

// splitLeadingPriority peels the first field off address as a numeric
// priority, requiring at least rest fields after it.
func splitLeadingPriority(address string, rest int) (int, string, string) {
	f := strings.Fields(address)
	if len(f) < rest+1 {
		return 0, "", fmt.Sprintf("got %q", address)
	}
	pref, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, "", fmt.Sprintf("priority parse failed for %q", f[0])
	}
	return pref, strings.Join(f[1:], " "), ""
}
