package namecheap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const domainListXML = `<?xml version="1.0" encoding="utf-8"?>
<ApiResponse Status="OK" xmlns="http://api.namecheap.com/xml.response">
  <Errors />
  <RequestedCommand>namecheap.domains.getList</RequestedCommand>
  <CommandResponse Type="namecheap.domains.getList">
    <DomainGetListResult>
      <Domain ID="127" Name="example.com" User="owner" Created="02/15/2016" Expires="02/15/2027" IsExpired="false" IsLocked="true" AutoRenew="true" WhoisGuard="ENABLED" IsPremium="false" IsOurDNS="true" />
      <Domain ID="128" Name="example.net" User="owner" Created="11/02/2021" Expires="11/02/2025" IsExpired="false" IsLocked="false" AutoRenew="false" WhoisGuard="NOTPRESENT" IsPremium="false" IsOurDNS="false" />
    </DomainGetListResult>
    <Paging>
      <TotalItems>2</TotalItems>
      <CurrentPage>1</CurrentPage>
      <PageSize>20</PageSize>
    </Paging>
  </CommandResponse>
</ApiResponse>`

func TestDomainList(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.getList": domainListXML,
	}}
	c := newTestClient(t, fake.handler())

	domains, err := c.Domains.List(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, domains, 2)

	d := domains[0]
	assert.Equal(t, "example.com", d.Name)
	assert.True(t, d.IsLocked.Value())
	assert.True(t, d.AutoRenew.Value())
	assert.Equal(t, "ENABLED", d.WhoisGuard)
	assert.Equal(t, 2016, d.Created.Year())
	assert.Equal(t, 2027, d.Expires.Year())

	assert.False(t, domains[1].IsLocked.Value())

	q := fake.calls[0]
	assert.Equal(t, "1", q.Get("Page"))
	assert.Equal(t, "20", q.Get("PageSize"))
}

func TestDomainListCapsPageSize(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.getList": domainListXML,
	}}
	c := newTestClient(t, fake.handler())

	_, err := c.Domains.List(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.Equal(t, "100", fake.calls[0].Get("PageSize"))
	assert.Equal(t, "1", fake.calls[0].Get("Page"))
}

const domainInfoXML = `<?xml version="1.0" encoding="utf-8"?>
<ApiResponse Status="OK" xmlns="http://api.namecheap.com/xml.response">
  <Errors />
  <RequestedCommand>namecheap.domains.getInfo</RequestedCommand>
  <CommandResponse Type="namecheap.domains.getInfo">
    <DomainGetInfoResult Status="Ok" ID="127" DomainName="example.com" OwnerName="owner" IsOwner="true" IsPremium="false">
      <DomainDetails>
        <CreatedDate>02/15/2016</CreatedDate>
        <ExpiredDate>02/15/2027</ExpiredDate>
        <NumYears>1</NumYears>
      </DomainDetails>
      <Whoisguard Enabled="True">
        <ID>53536</ID>
        <ExpiredDate>02/15/2027</ExpiredDate>
      </Whoisguard>
      <DnsDetails ProviderType="CUSTOM" IsUsingOurDNS="false">
        <Nameserver>ns-1.awsdns-01.org</Nameserver>
      </DnsDetails>
    </DomainGetInfoResult>
  </CommandResponse>
</ApiResponse>`

func TestDomainGetInfo(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.getInfo": domainInfoXML,
	}}
	c := newTestClient(t, fake.handler())

	info, err := c.Domains.GetInfo(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, "example.com", info.Name)
	assert.Equal(t, "Ok", info.Status)
	assert.True(t, info.IsOwner)
	assert.True(t, info.WhoisguardEnabled)
	assert.Equal(t, "CUSTOM", info.DNSProvider)
	assert.Equal(t, 2016, info.Created.Year())
}

// getInfo nests CreatedDate/ExpiredDate as element text, not attributes.
func TestDateElementText(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.getInfo": domainInfoXML,
	}}
	c := newTestClient(t, fake.handler())

	info, err := c.Domains.GetInfo(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, 2027, info.Expires.Year())
}

func TestDomainGetContacts(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.getContacts": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.domains.getContacts"><DomainContactsResult Domain="example.com"><Registrant><FirstName>Jane</FirstName><LastName>Doe</LastName><Address1>1 Main St</Address1><City>Springfield</City><StateProvince>IL</StateProvince><PostalCode>62701</PostalCode><Country>US</Country><Phone>+1.5551234567</Phone><EmailAddress>jane@example.com</EmailAddress></Registrant><Tech><FirstName>Jane</FirstName><LastName>Doe</LastName></Tech><Admin><FirstName>Jane</FirstName><LastName>Doe</LastName></Admin><AuxBilling><FirstName>Jane</FirstName><LastName>Doe</LastName></AuxBilling></DomainContactsResult></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	contacts, err := c.Domains.GetContacts(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", contacts.Registrant.FirstName)
	assert.Equal(t, "jane@example.com", contacts.Registrant.Email)
	assert.Equal(t, "Doe", contacts.AuxBilling.LastName)
}

func TestSetContactsFansOutToAllSlots(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.setContacts": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.domains.setContacts"><DomainSetContactResult Domain="example.com" IsSuccess="true" /></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	err := c.Domains.SetContacts(context.Background(), "example.com", Contact{
		FirstName: "Jane", LastName: "Doe", Address1: "1 Main St", City: "Springfield",
		StateProvince: "IL", PostalCode: "62701", Country: "US",
		Phone: "+1.5551234567", Email: "jane@example.com",
	})
	require.NoError(t, err)

	q := fake.calls[0]
	for _, slot := range []string{"Registrant", "Tech", "Admin", "AuxBilling"} {
		assert.Equal(t, "Jane", q.Get(slot+"FirstName"), slot)
		assert.Equal(t, "jane@example.com", q.Get(slot+"EmailAddress"), slot)
	}
}

func TestRegister(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.create": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.domains.create"><DomainCreateResult Domain="fresh.dev" Registered="true" ChargedAmount="12.98" DomainID="991" OrderID="441" TransactionID="771" WhoisguardEnable="true" NonRealTimeDomain="false" /></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	result, err := c.Domains.Register(context.Background(), "fresh.dev", RegisterOptions{
		Years:           2,
		WhoisProtection: true,
		Nameservers:     []string{"ns1.example.net", "ns2.example.net"},
	})
	require.NoError(t, err)
	assert.True(t, result.Registered.Value())
	assert.InDelta(t, 12.98, float64(result.ChargedAmount), 0.001)

	q := fake.calls[0]
	assert.Equal(t, "2", q.Get("Years"))
	assert.Equal(t, "yes", q.Get("AddFreeWhoisguard"))
	assert.Equal(t, "ns1.example.net,ns2.example.net", q.Get("Nameservers"))
}

func TestRenew(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.renew": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.domains.renew"><DomainRenewResult DomainName="example.com" DomainID="127" Renew="true" OrderID="442" TransactionID="772" ChargedAmount="10.98"><DomainDetails><ExpiredDate>02/15/2028</ExpiredDate></DomainDetails></DomainRenewResult></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	result, err := c.Domains.Renew(context.Background(), "example.com", 1)
	require.NoError(t, err)
	assert.True(t, result.Renewed.Value())
	assert.Equal(t, "02/15/2028", result.ExpireDate)
}

func TestLockUnlock(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.setRegistrarLock": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.domains.setRegistrarLock"><DomainSetRegistrarLockResult Domain="example.com" IsSuccess="true" /></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())
	ctx := context.Background()

	require.NoError(t, c.Domains.Lock(ctx, "example.com"))
	assert.Equal(t, "LOCK", fake.calls[0].Get("LockAction"))

	require.NoError(t, c.Domains.Unlock(ctx, "example.com"))
	assert.Equal(t, "UNLOCK", fake.calls[1].Get("LockAction"))
}

func TestGetTldList(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.domains.getTldList": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.domains.getTldList"><Tlds><Tld Name="com" MinRegisterYears="1" MaxRegisterYears="10" IsApiRegisterable="true" IsApiRenewable="true" Type="GTLD">Most popular</Tld><Tld Name="co.uk" MinRegisterYears="2" MaxRegisterYears="10" IsApiRegisterable="false" Type="CCTLD" /></Tlds></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	tlds, err := c.Domains.GetTldList(context.Background())
	require.NoError(t, err)
	require.Len(t, tlds, 2)
	assert.Equal(t, "com", tlds[0].Name)
	assert.True(t, tlds[0].IsApiRegisterable.Value())
	assert.Equal(t, "co.uk", tlds[1].Name)
	assert.False(t, tlds[1].IsApiRegisterable.Value())
	assert.Equal(t, 2, tlds[1].MinRegisterYears)
}

func TestCheckEmptyInput(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{}}
	c := newTestClient(t, fake.handler())

	results, err := c.Domains.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, fake.calls)
}
