package namecheap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const whoisguardListXML = `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.whoisguard.getList"><WhoisguardGetListResult><Whoisguard ID="53536" DomainName="example.com" Created="02/15/2016" Expires="02/15/2027" Status="ENABLED" /><Whoisguard ID="53537" DomainName="example.net" Created="11/02/2021" Expires="11/02/2025" Status="NOTPRESENT" /></WhoisguardGetListResult></CommandResponse></ApiResponse>`

func TestWhoisguardGetList(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.whoisguard.getList": whoisguardListXML,
	}}
	c := newTestClient(t, fake.handler())

	entries, err := c.Whoisguard.GetList(context.Background(), "", 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(53536), entries[0].ID)
	assert.Equal(t, "example.com", entries[0].Domain)
	assert.Equal(t, "ENABLED", entries[0].Status)

	q := fake.calls[0]
	assert.Equal(t, "ALL", q.Get("ListType"))
	assert.Equal(t, "1", q.Get("Page"))
}

func TestWhoisguardEnableResolvesID(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.whoisguard.getList": whoisguardListXML,
		"namecheap.whoisguard.enable":  `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.whoisguard.enable"><WhoisguardEnableResult IsSuccess="true" /></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	err := c.Whoisguard.Enable(context.Background(), "Example.COM", "me@mailbox.test")
	require.NoError(t, err)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, "ALLOTED", fake.calls[0].Get("ListType"))
	assert.Equal(t, "53536", fake.calls[1].Get("WhoisguardID"))
	assert.Equal(t, "me@mailbox.test", fake.calls[1].Get("ForwardedToEmail"))
}

func TestWhoisguardEnableRequiresForwardAddress(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{}}
	c := newTestClient(t, fake.handler())

	err := c.Whoisguard.Enable(context.Background(), "example.com", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "forwarded_to", ve.Field)
	assert.Empty(t, fake.calls)
}

func TestWhoisguardUnknownDomain(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.whoisguard.getList": whoisguardListXML,
	}}
	c := newTestClient(t, fake.handler())

	err := c.Whoisguard.Disable(context.Background(), "stranger.org")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "domain", ve.Field)
}

func TestWhoisguardRenewYearsBounds(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{}}
	c := newTestClient(t, fake.handler())

	for _, years := range []int{0, -1, 10} {
		_, err := c.Whoisguard.Renew(context.Background(), "example.com", years)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "years %d", years)
		assert.Equal(t, "years", ve.Field)
	}
	assert.Empty(t, fake.calls)
}

func TestWhoisguardChangeEmail(t *testing.T) {
	fake := &fakeRegistrar{responses: map[string]string{
		"namecheap.whoisguard.getList":            whoisguardListXML,
		"namecheap.whoisguard.changeEmailAddress": `<ApiResponse Status="OK"><Errors /><CommandResponse Type="namecheap.whoisguard.changeEmailAddress"><WhoisguardChangeEmailAddressResult IsSuccess="true" WGEmail="fresh123@wgmask.test" WGOldEmail="stale456@wgmask.test" /></CommandResponse></ApiResponse>`,
	}}
	c := newTestClient(t, fake.handler())

	newEmail, oldEmail, err := c.Whoisguard.ChangeEmail(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh123@wgmask.test", newEmail)
	assert.Equal(t, "stale456@wgmask.test", oldEmail)
}
