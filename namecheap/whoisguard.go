package namecheap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// WhoisguardService wraps the whoisguard.* command namespace.
//
// The API addresses privacy subscriptions by numeric WhoisguardID, not by
// domain. The domain-based methods here resolve the ID through GetList
// first, costing one extra round trip.
type WhoisguardService struct {
	client *Client
}

// WhoisguardListType filters GetList.
type WhoisguardListType string

const (
	WhoisguardAll     WhoisguardListType = "ALL"
	WhoisguardAlloted WhoisguardListType = "ALLOTED"
	WhoisguardFree    WhoisguardListType = "FREE"
	WhoisguardDiscard WhoisguardListType = "DISCARD"
)

type whoisguardListResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		Entries []WhoisguardEntry `xml:"Whoisguard"`
	} `xml:"WhoisguardGetListResult"`
}

// GetList returns one page of privacy subscriptions.
func (s *WhoisguardService) GetList(ctx context.Context, listType WhoisguardListType, page, pageSize int) ([]WhoisguardEntry, error) {
	if listType == "" {
		listType = WhoisguardAll
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 100 {
		pageSize = 100
	}
	params := url.Values{}
	params.Set("ListType", string(listType))
	params.Set("Page", strconv.Itoa(page))
	params.Set("PageSize", strconv.Itoa(pageSize))

	var out whoisguardListResponse
	if err := s.client.get(ctx, "namecheap.whoisguard.getList", params, &out); err != nil {
		return nil, err
	}
	return out.Result.Entries, nil
}

func (s *WhoisguardService) resolveID(ctx context.Context, domain string) (int64, error) {
	entries, err := s.GetList(ctx, WhoisguardAlloted, 1, 100)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Domain, domain) {
			return e.ID, nil
		}
	}
	return 0, &ValidationError{
		Field:  "domain",
		Reason: fmt.Sprintf("no WhoisGuard subscription alloted to %s", domain),
	}
}

type whoisguardEnableResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		IsSuccess Bool `xml:"IsSuccess,attr"`
	} `xml:"WhoisguardEnableResult"`
}

// Enable turns on privacy for the domain, forwarding masked WHOIS email
// to forwardedTo.
func (s *WhoisguardService) Enable(ctx context.Context, domain, forwardedTo string) error {
	if forwardedTo == "" {
		return &ValidationError{Field: "forwarded_to", Reason: "forwarding email address is required"}
	}
	id, err := s.resolveID(ctx, domain)
	if err != nil {
		return err
	}
	params := url.Values{}
	params.Set("WhoisguardID", strconv.FormatInt(id, 10))
	params.Set("ForwardedToEmail", forwardedTo)

	var out whoisguardEnableResponse
	if err := s.client.get(ctx, "namecheap.whoisguard.enable", params, &out); err != nil {
		return err
	}
	if !out.Result.IsSuccess.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("whoisguard enable reported failure for %s", domain)}
	}
	return nil
}

type whoisguardDisableResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		IsSuccess Bool `xml:"IsSuccess,attr"`
	} `xml:"WhoisguardDisableResult"`
}

// Disable turns off privacy for the domain.
func (s *WhoisguardService) Disable(ctx context.Context, domain string) error {
	id, err := s.resolveID(ctx, domain)
	if err != nil {
		return err
	}
	params := url.Values{}
	params.Set("WhoisguardID", strconv.FormatInt(id, 10))

	var out whoisguardDisableResponse
	if err := s.client.get(ctx, "namecheap.whoisguard.disable", params, &out); err != nil {
		return err
	}
	if !out.Result.IsSuccess.Value() {
		return &APIError{Code: "UNKNOWN", Message: fmt.Sprintf("whoisguard disable reported failure for %s", domain)}
	}
	return nil
}

type whoisguardRenewResponse struct {
	XMLName xml.Name          `xml:"CommandResponse"`
	Result  WhoisguardRenewal `xml:"WhoisguardRenewResult"`
}

// Renew extends the privacy subscription by years (1-9).
func (s *WhoisguardService) Renew(ctx context.Context, domain string, years int) (WhoisguardRenewal, error) {
	if years < 1 || years > 9 {
		return WhoisguardRenewal{}, &ValidationError{Field: "years", Reason: "must be between 1 and 9"}
	}
	id, err := s.resolveID(ctx, domain)
	if err != nil {
		return WhoisguardRenewal{}, err
	}
	params := url.Values{}
	params.Set("WhoisguardID", strconv.FormatInt(id, 10))
	params.Set("Years", strconv.Itoa(years))

	var out whoisguardRenewResponse
	if err := s.client.get(ctx, "namecheap.whoisguard.renew", params, &out); err != nil {
		return WhoisguardRenewal{}, err
	}
	return out.Result, nil
}

type whoisguardChangeEmailResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		NewEmail string `xml:"WGEmail,attr"`
		OldEmail string `xml:"WGOldEmail,attr"`
	} `xml:"WhoisguardChangeEmailAddressResult"`
}

// ChangeEmail rotates the masked forwarding address. The registrar
// generates the new address itself and retires the old one.
func (s *WhoisguardService) ChangeEmail(ctx context.Context, domain string) (newEmail, oldEmail string, err error) {
	id, err := s.resolveID(ctx, domain)
	if err != nil {
		return "", "", err
	}
	params := url.Values{}
	params.Set("WhoisguardID", strconv.FormatInt(id, 10))

	var out whoisguardChangeEmailResponse
	if err := s.client.get(ctx, "namecheap.whoisguard.changeEmailAddress", params, &out); err != nil {
		return "", "", err
	}
	return out.Result.NewEmail, out.Result.OldEmail, nil
}
