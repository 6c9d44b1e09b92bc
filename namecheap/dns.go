package namecheap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DNSService wraps the domains.dns.* command namespace.
//
// The registrar's only write verb for host records is setHosts, which
// replaces the entire record set. AddRecord, UpdateRecord and
// DeleteRecords therefore always fetch the live set first and resubmit
// the full result; there is no partial update on the wire.
type DNSService struct {
	client *Client
}

// splitDomain separates a domain into the SLD/TLD pair the dns commands
// require, using the public suffix list so multi-label TLDs like co.uk
// split correctly.
func splitDomain(domain string) (sld, tld string, err error) {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" || !strings.Contains(domain, ".") {
		return "", "", &ValidationError{Field: "domain", Reason: fmt.Sprintf("invalid domain name %q", domain)}
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return "", "", &ValidationError{Field: "domain", Reason: fmt.Sprintf("invalid domain name %q: %v", domain, err)}
	}
	suffix, _ := publicsuffix.PublicSuffix(etld1)
	sld = strings.TrimSuffix(etld1, "."+suffix)
	return sld, suffix, nil
}

type hostEntry struct {
	Name    string `xml:"Name,attr"`
	Type    string `xml:"Type,attr"`
	Address string `xml:"Address,attr"`
	TTL     string `xml:"TTL,attr"`
	MXPref  string `xml:"MXPref,attr"`
}

type getHostsResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Domain string      `xml:"Domain,attr"`
		Hosts  []hostEntry `xml:"host"`
	} `xml:"DomainDNSGetHostsResult"`
}

// GetHosts returns all host records for the domain.
func (s *DNSService) GetHosts(ctx context.Context, domain string) ([]Record, error) {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("SLD", sld)
	params.Set("TLD", tld)

	var out getHostsResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.getHosts", params, &out); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(out.Result.Hosts))
	for _, h := range out.Result.Hosts {
		ttl, err := parseTTL(h.TTL)
		if err != nil {
			return nil, err
		}
		pref := 0
		if v := strings.TrimSpace(h.MXPref); v != "" {
			pref, err = strconv.Atoi(v)
			if err != nil {
				return nil, &ValidationError{Field: "mxpref", Reason: fmt.Sprintf("%q is not a number", h.MXPref)}
			}
		}
		records = append(records, Record{
			Name:    h.Name,
			Type:    RecordType(h.Type),
			Address: h.Address,
			TTL:     ttl,
			MXPref:  pref,
		})
	}
	return records, nil
}

type setHostsResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Domain    string `xml:"Domain,attr"`
		IsSuccess Bool   `xml:"IsSuccess,attr"`
	} `xml:"DomainDNSSetHostsResult"`
}

// SetHosts replaces the domain's entire host record set with records.
// Records absent from the slice are deleted by the registrar; callers
// that intend to preserve existing records must fetch and merge first
// (or use AddRecord/UpdateRecord, which do so).
func (s *DNSService) SetHosts(ctx context.Context, domain string, records []Record) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return &ValidationError{Field: "records", Reason: "refusing to submit an empty record set; the registrar would delete every record"}
	}

	params := url.Values{}
	params.Set("SLD", sld)
	params.Set("TLD", tld)
	for i := range records {
		r := records[i]
		if err := r.normalize(); err != nil {
			return fmt.Errorf("record %d (%s %s): %w", i+1, r.Type, r.Name, err)
		}
		n := strconv.Itoa(i + 1)
		params.Set("HostName"+n, r.Name)
		params.Set("RecordType"+n, string(r.Type))
		params.Set("Address"+n, r.Address)
		params.Set("TTL"+n, strconv.Itoa(r.TTL))
		if r.Type == TypeMX || r.Type == TypeSRV {
			params.Set("MXPref"+n, strconv.Itoa(r.MXPref))
		}
	}

	var out setHostsResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.setHosts", params, &out); err != nil {
		return err
	}
	if !out.Result.IsSuccess.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("setHosts reported failure for %s", domain)}
	}
	return nil
}

// SetHostsFromBuilder finalizes the builder and submits the result as the
// complete record set.
func (s *DNSService) SetHostsFromBuilder(ctx context.Context, domain string, b *RecordBuilder) error {
	records, err := b.Build()
	if err != nil {
		return err
	}
	return s.SetHosts(ctx, domain, records)
}

// AddRecord appends one record while preserving every existing record.
// An existing record with the same (name, type, address) identity makes
// the call a no-op success.
func (s *DNSService) AddRecord(ctx context.Context, domain string, record Record) error {
	if err := record.normalize(); err != nil {
		return err
	}
	existing, err := s.GetHosts(ctx, domain)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.Key() == record.Key() {
			return nil
		}
	}
	return s.SetHosts(ctx, domain, append(existing, record))
}

// UpdateRecord replaces the record matching (name, type), or appends the
// record when no match exists. Other records are preserved.
func (s *DNSService) UpdateRecord(ctx context.Context, domain string, record Record) error {
	if err := record.normalize(); err != nil {
		return err
	}
	existing, err := s.GetHosts(ctx, domain)
	if err != nil {
		return err
	}
	replaced := false
	next := make([]Record, 0, len(existing)+1)
	for _, r := range existing {
		if r.Name == record.Name && r.Type == record.Type {
			if !replaced {
				next = append(next, record)
				replaced = true
			}
			continue
		}
		next = append(next, r)
	}
	if !replaced {
		next = append(next, record)
	}
	return s.SetHosts(ctx, domain, next)
}

// RecordFilter selects records by exact field match; empty fields match
// everything. An empty filter matches no records rather than all, so a
// careless DeleteRecords call cannot wipe a zone.
type RecordFilter struct {
	Name    string
	Type    RecordType
	Address string
}

func (f RecordFilter) empty() bool {
	return f.Name == "" && f.Type == "" && f.Address == ""
}

func (f RecordFilter) matches(r Record) bool {
	if f.empty() {
		return false
	}
	if f.Name != "" && r.Name != f.Name {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Address != "" && r.Address != f.Address {
		return false
	}
	return true
}

// DeleteRecords removes every record matching the filter and resubmits
// the remainder. It returns how many records were removed; zero matches
// performs no write at all.
func (s *DNSService) DeleteRecords(ctx context.Context, domain string, filter RecordFilter) (int, error) {
	existing, err := s.GetHosts(ctx, domain)
	if err != nil {
		return 0, err
	}
	kept := make([]Record, 0, len(existing))
	for _, r := range existing {
		if !filter.matches(r) {
			kept = append(kept, r)
		}
	}
	deleted := len(existing) - len(kept)
	if deleted == 0 {
		return 0, nil
	}
	if len(kept) == 0 {
		return 0, &ValidationError{Field: "filter", Reason: "filter matches every record; refusing to submit an empty record set"}
	}
	if err := s.SetHosts(ctx, domain, kept); err != nil {
		return 0, err
	}
	return deleted, nil
}

type getNameserversResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		IsUsingOurs Bool     `xml:"IsUsingOurDNS,attr"`
		Hosts       []string `xml:"Nameserver"`
	} `xml:"DomainDNSGetListResult"`
}

// GetNameservers returns the domain's current nameservers and whether the
// domain is on the registrar's default DNS.
func (s *DNSService) GetNameservers(ctx context.Context, domain string) (Nameservers, error) {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return Nameservers{}, err
	}
	params := url.Values{}
	params.Set("SLD", sld)
	params.Set("TLD", tld)

	var out getNameserversResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.getList", params, &out); err != nil {
		return Nameservers{}, err
	}
	return Nameservers{IsDefault: out.Result.IsUsingOurs.Value(), Hosts: out.Result.Hosts}, nil
}

type setNameserversResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Updated Bool `xml:"Updated,attr"`
	} `xml:"DomainDNSSetCustomResult"`
}

// SetCustomNameservers switches the domain to custom nameservers, e.g.
// when delegating to an external DNS host. One to five nameservers.
func (s *DNSService) SetCustomNameservers(ctx context.Context, domain string, nameservers []string) error {
	if len(nameservers) == 0 {
		return &ValidationError{Field: "nameservers", Reason: "at least one nameserver is required"}
	}
	if len(nameservers) > 5 {
		return &ValidationError{Field: "nameservers", Reason: "at most 5 nameservers are allowed"}
	}
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}
	params := url.Values{}
	params.Set("SLD", sld)
	params.Set("TLD", tld)
	params.Set("Nameservers", strings.Join(nameservers, ","))

	var out setNameserversResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.setCustom", params, &out); err != nil {
		return err
	}
	if !out.Result.Updated.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("setCustom reported failure for %s", domain)}
	}
	return nil
}

type setDefaultResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Updated Bool `xml:"Updated,attr"`
	} `xml:"DomainDNSSetDefaultResult"`
}

// SetDefaultNameservers switches the domain back to the registrar's
// default DNS.
func (s *DNSService) SetDefaultNameservers(ctx context.Context, domain string) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}
	params := url.Values{}
	params.Set("SLD", sld)
	params.Set("TLD", tld)

	var out setDefaultResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.setDefault", params, &out); err != nil {
		return err
	}
	if !out.Result.Updated.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("setDefault reported failure for %s", domain)}
	}
	return nil
}

type forwardEntry struct {
	Mailbox string `xml:"mailbox,attr"`
	Target  string `xml:",chardata"`
}

type getForwardingResponse struct {
	XMLName  xml.Name       `xml:"CommandResponse"`
	Forwards []forwardEntry `xml:"DomainDNSGetEmailForwardingResult>Forward"`
}

// GetEmailForwarding returns the domain's mailbox forwarding rules.
func (s *DNSService) GetEmailForwarding(ctx context.Context, domain string) ([]EmailForward, error) {
	params := url.Values{}
	params.Set("DomainName", domain)

	var out getForwardingResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.getEmailForwarding", params, &out); err != nil {
		return nil, err
	}
	rules := make([]EmailForward, 0, len(out.Forwards))
	for _, f := range out.Forwards {
		rules = append(rules, EmailForward{Mailbox: f.Mailbox, ForwardTo: strings.TrimSpace(f.Target)})
	}
	return rules, nil
}

type setForwardingResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		IsSuccess Bool `xml:"IsSuccess,attr"`
	} `xml:"DomainDNSSetEmailForwardingResult"`
}

// SetEmailForwarding replaces all mailbox forwarding rules for the
// domain. Like setHosts, this is a full-replace verb.
func (s *DNSService) SetEmailForwarding(ctx context.Context, domain string, rules []EmailForward) error {
	if len(rules) == 0 {
		return &ValidationError{Field: "rules", Reason: "at least one forwarding rule is required"}
	}
	params := url.Values{}
	params.Set("DomainName", domain)
	for i, r := range rules {
		n := strconv.Itoa(i + 1)
		params.Set("MailBox"+n, r.Mailbox)
		params.Set("ForwardTo"+n, r.ForwardTo)
	}

	var out setForwardingResponse
	if err := s.client.get(ctx, "namecheap.domains.dns.setEmailForwarding", params, &out); err != nil {
		return err
	}
	if !out.Result.IsSuccess.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("setEmailForwarding reported failure for %s", domain)}
	}
	return nil
}
