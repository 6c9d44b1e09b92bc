package namecheap

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"
)

// UsersService wraps the users.* command namespace.
type UsersService struct {
	client *Client
}

type balancesResponse struct {
	XMLName xml.Name       `xml:"CommandResponse"`
	Result  AccountBalance `xml:"UserGetBalancesResult"`
}

// GetBalances returns the account's funds summary.
func (s *UsersService) GetBalances(ctx context.Context) (AccountBalance, error) {
	var out balancesResponse
	if err := s.client.get(ctx, "namecheap.users.getBalances", nil, &out); err != nil {
		return AccountBalance{}, err
	}
	return out.Result, nil
}

// Pricing mirrors the deeply nested users.getPricing result:
// ProductType > ProductCategory > Product > Price. The nesting and
// attribute names here are exactly what the endpoint emits; the shape is
// easy to get wrong and is pinned by fixture tests, so treat changes to
// these tags as suspect until proven against a recorded response.
type Pricing struct {
	ProductTypes []PricingProductType
}

// PricingProductType is one ProductType element (e.g. "domains").
type PricingProductType struct {
	Name       string            `xml:"Name,attr"`
	Categories []PricingCategory `xml:"ProductCategory"`
}

// PricingCategory is one action group (e.g. "register", "renew").
type PricingCategory struct {
	Name     string           `xml:"Name,attr"`
	Products []PricingProduct `xml:"Product"`
}

// PricingProduct is one product row, e.g. the "com" TLD.
type PricingProduct struct {
	Name   string         `xml:"Name,attr"`
	Prices []ProductPrice `xml:"Price"`
}

// ProductPrice is one duration tier of a product.
type ProductPrice struct {
	Duration     int    `xml:"Duration,attr"`
	DurationType string `xml:"DurationType,attr"`
	Price        Price  `xml:"Price,attr"`
	RegularPrice Price  `xml:"RegularPrice,attr"`
	YourPrice    Price  `xml:"YourPrice,attr"`
	RetailPrice  Price  `xml:"RetailPrice,attr"`
	Currency     string `xml:"Currency,attr"`
}

// Find navigates to the price tier for a category ("register"), product
// name (TLD) and duration in years. Matching is case-insensitive because
// the endpoint is inconsistent about casing across product types.
func (p Pricing) Find(category, product string, duration int) (ProductPrice, bool) {
	for _, pt := range p.ProductTypes {
		for _, cat := range pt.Categories {
			if !strings.EqualFold(cat.Name, category) {
				continue
			}
			for _, prod := range cat.Products {
				if !strings.EqualFold(prod.Name, product) {
					continue
				}
				for _, price := range prod.Prices {
					if price.Duration == duration {
						return price, true
					}
				}
			}
		}
	}
	return ProductPrice{}, false
}

type pricingResponse struct {
	XMLName xml.Name `xml:"CommandResponse"`
	Result  struct {
		ProductTypes []PricingProductType `xml:"ProductType"`
	} `xml:"UserGetPricingResult"`
}

// GetPricing fetches the price matrix for a product type, action and
// product name, e.g. ("DOMAIN", "REGISTER", "com"). Responses are large;
// callers that query repeatedly should cache externally, the client does
// not.
func (s *UsersService) GetPricing(ctx context.Context, productType, action, productName string) (Pricing, error) {
	params := url.Values{}
	params.Set("ProductType", productType)
	if action != "" {
		params.Set("ActionName", action)
	}
	if productName != "" {
		params.Set("ProductName", productName)
	}

	var out pricingResponse
	if err := s.client.get(ctx, "namecheap.users.getPricing", params, &out); err != nil {
		return Pricing{}, err
	}
	return Pricing{ProductTypes: out.Result.ProductTypes}, nil
}
