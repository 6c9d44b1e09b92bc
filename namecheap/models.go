package namecheap

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bool decodes the registrar's boolean-ish attribute values. The API is
// inconsistent about spelling: "true"/"false", "yes"/"no" and
// "enabled"/"disabled" all appear, in any case. An absent attribute
// decodes to false; use *Bool where unset must stay distinguishable.
type Bool bool

func (b *Bool) UnmarshalXMLAttr(attr xml.Attr) error {
	switch strings.ToLower(strings.TrimSpace(attr.Value)) {
	case "true", "yes", "enabled", "1":
		*b = true
	case "false", "no", "disabled", "0", "":
		*b = false
	default:
		return &ValidationError{Field: attr.Name.Local, Reason: fmt.Sprintf("unrecognized boolean value %q", attr.Value)}
	}
	return nil
}

func (b Bool) Value() bool { return bool(b) }

// Date decodes the registrar's MM/DD/YYYY dates. They appear both as
// attributes (getList) and as element text (getInfo's DomainDetails), so
// both unmarshal paths are implemented.
type Date struct {
	time.Time
}

func (d *Date) parse(field, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse("01/02/2006", v)
	if err != nil {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("unrecognized date %q", value)}
	}
	d.Time = t
	return nil
}

func (d *Date) UnmarshalXMLAttr(attr xml.Attr) error {
	return d.parse(attr.Name.Local, attr.Value)
}

func (d *Date) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var v string
	if err := dec.DecodeElement(&v, &start); err != nil {
		return err
	}
	return d.parse(start.Name.Local, v)
}

// Price decodes numeric money attributes, tolerating the empty strings the
// pricing endpoints emit for absent values.
type Price float64

func (p *Price) UnmarshalXMLAttr(attr xml.Attr) error {
	v := strings.TrimSpace(attr.Value)
	if v == "" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return &ValidationError{Field: attr.Name.Local, Reason: fmt.Sprintf("unrecognized price %q", attr.Value)}
	}
	*p = Price(f)
	return nil
}

// DomainCheck is one result row of domains.check.
type DomainCheck struct {
	Domain    string `xml:"Domain,attr"`
	Available Bool   `xml:"Available,attr"`
	IsPremium Bool   `xml:"IsPremiumName,attr"`

	PremiumRegistrationPrice Price `xml:"PremiumRegistrationPrice,attr"`

	// Filled in by CheckWithPricing, not by the check call itself.
	RegularPrice float64 `xml:"-"`
	YourPrice    float64 `xml:"-"`
}

// Domain is one row of domains.getList. It is a read-only snapshot; the
// registrar has no verb to mutate these fields directly.
type Domain struct {
	ID         string `xml:"ID,attr"`
	Name       string `xml:"Name,attr"`
	User       string `xml:"User,attr"`
	Created    Date   `xml:"Created,attr"`
	Expires    Date   `xml:"Expires,attr"`
	IsExpired  Bool   `xml:"IsExpired,attr"`
	IsLocked   Bool   `xml:"IsLocked,attr"`
	AutoRenew  Bool   `xml:"AutoRenew,attr"`
	WhoisGuard string `xml:"WhoisGuard,attr"`
	IsPremium  Bool   `xml:"IsPremium,attr"`
	IsOurDNS   Bool   `xml:"IsOurDNS,attr"`
}

// DomainInfo is the flattened result of domains.getInfo.
type DomainInfo struct {
	ID                string
	Name              string
	Owner             string
	IsOwner           bool
	IsPremium         bool
	Status            string
	Created           Date
	Expires           Date
	WhoisguardEnabled bool
	DNSProvider       string
}

// Contact carries the WHOIS contact fields shared by all four contact
// slots (registrant, tech, admin, aux billing).
type Contact struct {
	FirstName     string `xml:"FirstName"`
	LastName      string `xml:"LastName"`
	Organization  string `xml:"Organization"`
	Address1      string `xml:"Address1"`
	Address2      string `xml:"Address2"`
	City          string `xml:"City"`
	StateProvince string `xml:"StateProvince"`
	PostalCode    string `xml:"PostalCode"`
	Country       string `xml:"Country"`
	Phone         string `xml:"Phone"`
	Email         string `xml:"EmailAddress"`
}

// DomainContacts groups the four contact slots of domains.getContacts.
type DomainContacts struct {
	Registrant Contact `xml:"Registrant"`
	Tech       Contact `xml:"Tech"`
	Admin      Contact `xml:"Admin"`
	AuxBilling Contact `xml:"AuxBilling"`
}

// Tld is one row of domains.getTldList.
type Tld struct {
	Name                string `xml:"Name,attr"`
	MinRegisterYears    int    `xml:"MinRegisterYears,attr"`
	MaxRegisterYears    int    `xml:"MaxRegisterYears,attr"`
	MinRenewYears       int    `xml:"MinRenewYears,attr"`
	MaxRenewYears       int    `xml:"MaxRenewYears,attr"`
	IsApiRegisterable   Bool   `xml:"IsApiRegisterable,attr"`
	IsApiRenewable      Bool   `xml:"IsApiRenewable,attr"`
	IsApiTransferable   Bool   `xml:"IsApiTransferable,attr"`
	IsEppRequired       Bool   `xml:"IsEppRequired,attr"`
	IsSupportsIDN       Bool   `xml:"IsSupportsIDN,attr"`
	Type                string `xml:"Type,attr"`
	Category            string `xml:"Category,attr"`
	SequenceNumber      int    `xml:"SequenceNumber,attr"`
	NonRealTime         Bool   `xml:"NonRealTime,attr"`
	WhoisVerification   Bool   `xml:"WhoisVerification,attr"`
	IsDisableWGAllotted Bool   `xml:"IsDisableWGAllotted,attr"`
}

// RegisterResult is the outcome of domains.create.
type RegisterResult struct {
	Domain            string `xml:"Domain,attr"`
	Registered        Bool   `xml:"Registered,attr"`
	ChargedAmount     Price  `xml:"ChargedAmount,attr"`
	DomainID          string `xml:"DomainID,attr"`
	OrderID           string `xml:"OrderID,attr"`
	TransactionID     string `xml:"TransactionID,attr"`
	WhoisguardEnable  Bool   `xml:"WhoisguardEnable,attr"`
	NonRealTimeDomain Bool   `xml:"NonRealTimeDomain,attr"`
}

// RenewResult is the outcome of domains.renew.
type RenewResult struct {
	Domain        string `xml:"DomainName,attr"`
	Renewed       Bool   `xml:"Renew,attr"`
	ChargedAmount Price  `xml:"ChargedAmount,attr"`
	DomainID      string `xml:"DomainID,attr"`
	OrderID       string `xml:"OrderID,attr"`
	TransactionID string `xml:"TransactionID,attr"`
	ExpireDate    string `xml:"DomainDetails>ExpiredDate"`
}

// Nameservers is the result of domains.dns.getList: whether the domain is
// on the registrar's default DNS and the current nameserver hosts.
type Nameservers struct {
	IsDefault bool
	Hosts     []string
}

// EmailForward is one mailbox forwarding rule.
type EmailForward struct {
	Mailbox   string
	ForwardTo string
}

// AccountBalance is the result of users.getBalances.
type AccountBalance struct {
	Currency                  string `xml:"Currency,attr"`
	AvailableBalance          Price  `xml:"AvailableBalance,attr"`
	AccountBalance            Price  `xml:"AccountBalance,attr"`
	EarnedAmount              Price  `xml:"EarnedAmount,attr"`
	WithdrawableAmount        Price  `xml:"WithdrawableAmount,attr"`
	FundsRequiredForAutoRenew Price  `xml:"FundsRequiredForAutoRenew,attr"`
}

// WhoisguardEntry is one privacy subscription row of whoisguard.getList.
type WhoisguardEntry struct {
	ID      int64  `xml:"ID,attr"`
	Domain  string `xml:"DomainName,attr"`
	Created Date   `xml:"Created,attr"`
	Expires Date   `xml:"Expires,attr"`
	Status  string `xml:"Status,attr"`
}

// WhoisguardRenewal is the outcome of whoisguard.renew.
type WhoisguardRenewal struct {
	WhoisguardID  int64 `xml:"WhoisguardId,attr"`
	Years         int   `xml:"Years,attr"`
	Renewed       Bool  `xml:"Renew,attr"`
	OrderID       int64 `xml:"OrderId,attr"`
	TransactionID int64 `xml:"TransactionId,attr"`
	ChargedAmount Price `xml:"ChargedAmount,attr"`
}
