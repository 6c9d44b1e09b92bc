package recordfile

import (
	"strconv"
	"strings"

	"github.com/nctl-dev/nctl/namecheap"
)

// Render writes records as the tab-separated text table, with a header
// line so Parse reads it back by column name. The domain goes into a
// leading comment; the text format has no field for it.
func Render(domain string, records []namecheap.Record) string {
	var b strings.Builder
	if domain != "" {
		b.WriteString("# ")
		b.WriteString(domain)
		b.WriteString("\n")
	}
	b.WriteString("Type\tName\tAddress\tTTL\tMXPref\n")

	for _, r := range records {
		b.WriteString(string(r.Type))
		b.WriteString("\t")
		b.WriteString(r.Name)
		b.WriteString("\t")
		b.WriteString(r.Address)
		b.WriteString("\t")
		if r.TTL > 0 {
			b.WriteString(strconv.Itoa(r.TTL))
		}
		b.WriteString("\t")
		if r.Type == namecheap.TypeMX || r.Type == namecheap.TypeSRV {
			b.WriteString(strconv.Itoa(r.MXPref))
		}
		b.WriteString("\n")
	}
	return b.String()
}
