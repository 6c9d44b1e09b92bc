package namecheap

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolAttrVariants(t *testing.T) {
	type doc struct {
		V Bool `xml:"v,attr"`
	}

	trues := []string{"true", "TRUE", "True", "yes", "YES", "enabled", "ENABLED", "1", " true "}
	for _, v := range trues {
		var d doc
		require.NoError(t, xml.Unmarshal([]byte(`<doc v="`+v+`" />`), &d), v)
		assert.True(t, d.V.Value(), v)
	}

	falses := []string{"false", "no", "disabled", "0", ""}
	for _, v := range falses {
		var d doc
		require.NoError(t, xml.Unmarshal([]byte(`<doc v="`+v+`" />`), &d), v)
		assert.False(t, d.V.Value(), v)
	}

	var d doc
	err := xml.Unmarshal([]byte(`<doc v="maybe" />`), &d)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "v", ve.Field)
}

func TestDateAttr(t *testing.T) {
	type doc struct {
		V Date `xml:"v,attr"`
	}

	var d doc
	require.NoError(t, xml.Unmarshal([]byte(`<doc v="02/15/2027" />`), &d))
	assert.Equal(t, 2027, d.V.Year())
	assert.Equal(t, 15, d.V.Day())

	var empty doc
	require.NoError(t, xml.Unmarshal([]byte(`<doc v="" />`), &empty))
	assert.True(t, empty.V.IsZero())

	var bad doc
	err := xml.Unmarshal([]byte(`<doc v="2027-02-15" />`), &bad)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestDateElement(t *testing.T) {
	type doc struct {
		V Date `xml:"ExpiredDate"`
	}

	var d doc
	require.NoError(t, xml.Unmarshal([]byte(`<doc><ExpiredDate>11/02/2025</ExpiredDate></doc>`), &d))
	assert.Equal(t, 2025, d.V.Year())

	var empty doc
	require.NoError(t, xml.Unmarshal([]byte(`<doc><ExpiredDate></ExpiredDate></doc>`), &empty))
	assert.True(t, empty.V.IsZero())
}

func TestPriceAttr(t *testing.T) {
	type doc struct {
		V Price `xml:"v,attr"`
	}

	var d doc
	require.NoError(t, xml.Unmarshal([]byte(`<doc v="12.98" />`), &d))
	assert.InDelta(t, 12.98, float64(d.V), 0.001)

	// The pricing endpoints emit empty strings for absent values.
	var empty doc
	require.NoError(t, xml.Unmarshal([]byte(`<doc v="" />`), &empty))
	assert.Zero(t, float64(empty.V))

	var bad doc
	err := xml.Unmarshal([]byte(`<doc v="$12.98" />`), &bad)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}
