package namecheap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DomainsService wraps the domains.* command namespace.
type DomainsService struct {
	client *Client
}

type domainCheckResponse struct {
	XMLName xml.Name      `xml:"CommandResponse"`
	Results []DomainCheck `xml:"DomainCheckResult"`
}

// Check reports availability for one or more domains in a single call;
// the command accepts a comma-separated list, so callers checking many
// domains should pass them together instead of looping.
func (s *DomainsService) Check(ctx context.Context, domains ...string) ([]DomainCheck, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("DomainList", strings.Join(domains, ","))

	var out domainCheckResponse
	if err := s.client.get(ctx, "namecheap.domains.check", params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// CheckWithPricing is Check plus one users.getPricing call per distinct
// TLD, merging first-year registration prices into available results.
// Pricing failures do not fail the check; affected results simply carry
// zero prices.
func (s *DomainsService) CheckWithPricing(ctx context.Context, domains ...string) ([]DomainCheck, error) {
	results, err := s.Check(ctx, domains...)
	if err != nil {
		return nil, err
	}

	byTLD := map[string][]int{}
	for i, r := range results {
		if !r.Available.Value() {
			continue
		}
		_, tld, err := splitDomain(r.Domain)
		if err != nil {
			continue
		}
		byTLD[tld] = append(byTLD[tld], i)
	}

	for tld, idxs := range byTLD {
		pricing, err := s.client.Users.GetPricing(ctx, "DOMAIN", "REGISTER", tld)
		if err != nil {
			s.client.log.Debug("pricing lookup failed", "tld", tld, "error", err)
			continue
		}
		price, ok := pricing.Find("register", tld, 1)
		if !ok {
			continue
		}
		for _, i := range idxs {
			results[i].RegularPrice = float64(price.RegularPrice)
			results[i].YourPrice = float64(price.YourPrice)
		}
	}
	return results, nil
}

type domainListResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Domains []Domain `xml:"Domain"`
	} `xml:"DomainGetListResult"`
	Paging struct {
		TotalItems  int `xml:"TotalItems"`
		CurrentPage int `xml:"CurrentPage"`
		PageSize    int `xml:"PageSize"`
	} `xml:"Paging"`
}

// List returns one page of the account's domains. pageSize is capped at
// the API maximum of 100.
func (s *DomainsService) List(ctx context.Context, page, pageSize int) ([]Domain, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	params := url.Values{}
	params.Set("Page", strconv.Itoa(page))
	params.Set("PageSize", strconv.Itoa(pageSize))

	var out domainListResponse
	if err := s.client.get(ctx, "namecheap.domains.getList", params, &out); err != nil {
		return nil, err
	}
	return out.Result.Domains, nil
}

type domainInfoResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		ID        string `xml:"ID,attr"`
		Name      string `xml:"DomainName,attr"`
		Owner     string `xml:"OwnerName,attr"`
		IsOwner   Bool   `xml:"IsOwner,attr"`
		IsPremium Bool   `xml:"IsPremium,attr"`
		Status    string `xml:"Status,attr"`
		Details   struct {
			Created Date `xml:"CreatedDate"`
			Expires Date `xml:"ExpiredDate"`
		} `xml:"DomainDetails"`
		Whoisguard struct {
			Enabled string `xml:"Enabled,attr"`
		} `xml:"Whoisguard"`
		DNSDetails struct {
			ProviderType string `xml:"ProviderType,attr"`
		} `xml:"DnsDetails"`
	} `xml:"DomainGetInfoResult"`
}

// GetInfo returns the flattened detail view of one domain.
func (s *DomainsService) GetInfo(ctx context.Context, domain string) (DomainInfo, error) {
	params := url.Values{}
	params.Set("DomainName", domain)

	var out domainInfoResponse
	if err := s.client.get(ctx, "namecheap.domains.getInfo", params, &out); err != nil {
		return DomainInfo{}, err
	}
	r := out.Result
	return DomainInfo{
		ID:                r.ID,
		Name:              r.Name,
		Owner:             r.Owner,
		IsOwner:           r.IsOwner.Value(),
		IsPremium:         r.IsPremium.Value(),
		Status:            r.Status,
		Created:           r.Details.Created,
		Expires:           r.Details.Expires,
		WhoisguardEnabled: strings.EqualFold(strings.TrimSpace(r.Whoisguard.Enabled), "true"),
		DNSProvider:       r.DNSDetails.ProviderType,
	}, nil
}

type domainContactsResponse struct {
	XMLName xml.Name       `xml:"CommandResponse"`
	Result  DomainContacts `xml:"DomainContactsResult"`
}

// GetContacts returns all four WHOIS contact slots for the domain.
func (s *DomainsService) GetContacts(ctx context.Context, domain string) (DomainContacts, error) {
	params := url.Values{}
	params.Set("DomainName", domain)

	var out domainContactsResponse
	if err := s.client.get(ctx, "namecheap.domains.getContacts", params, &out); err != nil {
		return DomainContacts{}, err
	}
	return out.Result, nil
}

// contactParams flattens a contact into the API's per-slot parameter
// names; the same contact is applied to all four slots, which is what
// the registrar requires for individual registrants.
func contactParams(params url.Values, c Contact) {
	fields := map[string]string{
		"FirstName":     c.FirstName,
		"LastName":      c.LastName,
		"Organization":  c.Organization,
		"Address1":      c.Address1,
		"Address2":      c.Address2,
		"City":          c.City,
		"StateProvince": c.StateProvince,
		"PostalCode":    c.PostalCode,
		"Country":       c.Country,
		"Phone":         c.Phone,
		"EmailAddress":  c.Email,
	}
	for _, slot := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
		for field, value := range fields {
			if value == "" {
				continue
			}
			params.Set(slot+field, value)
		}
	}
}

type setContactsResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		IsSuccess Bool `xml:"IsSuccess,attr"`
	} `xml:"DomainSetContactResult"`
}

// SetContacts applies the contact to all four WHOIS slots of the domain.
func (s *DomainsService) SetContacts(ctx context.Context, domain string, contact Contact) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}
	params := url.Values{}
	params.Set("SLD", sld)
	params.Set("TLD", tld)
	contactParams(params, contact)

	var out setContactsResponse
	if err := s.client.get(ctx, "namecheap.domains.setContacts", params, &out); err != nil {
		return err
	}
	if !out.Result.IsSuccess.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("setContacts reported failure for %s", domain)}
	}
	return nil
}

type tldListResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Tlds []Tld `xml:"Tld"`
	} `xml:"Tlds"`
}

// GetTldList returns every TLD the registrar supports, with registration
// constraints and API capabilities. The list rarely changes; the API docs
// recommend callers cache it externally.
func (s *DomainsService) GetTldList(ctx context.Context) ([]Tld, error) {
	var out tldListResponse
	if err := s.client.get(ctx, "namecheap.domains.getTldList", nil, &out); err != nil {
		return nil, err
	}
	return out.Result.Tlds, nil
}

// RegisterOptions collects the optional knobs of domains.create.
type RegisterOptions struct {
	Years           int
	Contact         *Contact
	Nameservers     []string
	WhoisProtection bool
	// AutoRenew is accepted for parity with the registrar UI but the API
	// applies it only for some TLDs.
	AutoRenew bool
}

type registerResponse struct {
	XMLName xml.Name       `xml:"CommandResponse"`
	Result  RegisterResult `xml:"DomainCreateResult"`
}

// Register registers a new domain. When opts.Contact is nil the account's
// default contact profile is used.
func (s *DomainsService) Register(ctx context.Context, domain string, opts RegisterOptions) (RegisterResult, error) {
	years := opts.Years
	if years < 1 {
		years = 1
	}
	params := url.Values{}
	params.Set("DomainName", domain)
	params.Set("Years", strconv.Itoa(years))
	if opts.WhoisProtection {
		params.Set("AddFreeWhoisguard", "yes")
		params.Set("WGEnabled", "yes")
	} else {
		params.Set("AddFreeWhoisguard", "no")
		params.Set("WGEnabled", "no")
	}
	if opts.Contact != nil {
		contactParams(params, *opts.Contact)
	}
	if len(opts.Nameservers) > 0 {
		ns := opts.Nameservers
		if len(ns) > 5 {
			ns = ns[:5]
		}
		params.Set("Nameservers", strings.Join(ns, ","))
	}

	var out registerResponse
	if err := s.client.get(ctx, "namecheap.domains.create", params, &out); err != nil {
		return RegisterResult{}, err
	}
	return out.Result, nil
}

type renewResponse struct {
	XMLName xml.Name    `xml:"CommandResponse"`
	Result  RenewResult `xml:"DomainRenewResult"`
}

// Renew extends the domain registration by the given number of years.
func (s *DomainsService) Renew(ctx context.Context, domain string, years int) (RenewResult, error) {
	if years < 1 {
		years = 1
	}
	params := url.Values{}
	params.Set("DomainName", domain)
	params.Set("Years", strconv.Itoa(years))

	var out renewResponse
	if err := s.client.get(ctx, "namecheap.domains.renew", params, &out); err != nil {
		return RenewResult{}, err
	}
	return out.Result, nil
}

type registrarLockResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		IsSuccess Bool `xml:"IsSuccess,attr"`
	} `xml:"DomainSetRegistrarLockResult"`
}

func (s *DomainsService) setRegistrarLock(ctx context.Context, domain, action string) error {
	params := url.Values{}
	params.Set("DomainName", domain)
	params.Set("LockAction", action)

	var out registrarLockResponse
	if err := s.client.get(ctx, "namecheap.domains.setRegistrarLock", params, &out); err != nil {
		return err
	}
	if !out.Result.IsSuccess.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("registrar lock %s reported failure for %s", strings.ToLower(action), domain)}
	}
	return nil
}

// Lock enables the registrar transfer lock.
func (s *DomainsService) Lock(ctx context.Context, domain string) error {
	return s.setRegistrarLock(ctx, domain, "LOCK")
}

// Unlock disables the registrar transfer lock, allowing transfers out.
func (s *DomainsService) Unlock(ctx context.Context, domain string) error {
	return s.setRegistrarLock(ctx, domain, "UNLOCK")
}
