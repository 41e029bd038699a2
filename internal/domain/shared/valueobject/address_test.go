package valueobject

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name        string
		street      string
		city        string
		postalCode  string
		opts        []AddressOption
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid address with required fields",
			street:     "123 Harbor Way",
			city:       "Oakland",
			postalCode: "94607",
			wantErr:    false,
		},
		{
			name:       "valid address with state",
			street:     "55 Water St",
			city:       "New York",
			postalCode: "10041",
			opts:       []AddressOption{WithState("NY")},
			wantErr:    false,
		},
		{
			name:       "valid address with country",
			street:     "1 Canada Square",
			city:       "London",
			postalCode: "E14 5AB",
			opts:       []AddressOption{WithCountry("United Kingdom")},
			wantErr:    false,
		},
		{
			name:        "empty street",
			street:      "",
			city:        "Oakland",
			postalCode:  "94607",
			wantErr:     true,
			errContains: "street cannot be empty",
		},
		{
			name:        "empty city",
			street:      "123 Harbor Way",
			city:        "",
			postalCode:  "94607",
			wantErr:     true,
			errContains: "city cannot be empty",
		},
		{
			name:        "empty postal code",
			street:      "123 Harbor Way",
			city:        "Oakland",
			postalCode:  "",
			wantErr:     true,
			errContains: "postal code cannot be empty",
		},
		{
			name:        "street too long",
			street:      strings.Repeat("a", 201),
			city:        "Oakland",
			postalCode:  "94607",
			wantErr:     true,
			errContains: "street cannot exceed 200 characters",
		},
		{
			name:        "postal code too long",
			street:      "123 Harbor Way",
			city:        "Oakland",
			postalCode:  strings.Repeat("9", 21),
			wantErr:     true,
			errContains: "postal code cannot exceed 20 characters",
		},
		{
			name:       "whitespace is trimmed",
			street:     "  123 Harbor Way  ",
			city:       " Oakland ",
			postalCode: " 94607 ",
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewAddress(tt.street, tt.city, tt.postalCode, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.street), addr.Street())
			assert.Equal(t, strings.TrimSpace(tt.city), addr.City())
			assert.Equal(t, strings.TrimSpace(tt.postalCode), addr.PostalCode())
		})
	}
}

func TestAddress_FullAddress(t *testing.T) {
	addr, err := NewAddressFull("123 Harbor Way", "Oakland", "CA", "94607", "USA")
	require.NoError(t, err)
	assert.Equal(t, "123 Harbor Way, Oakland, CA, 94607, USA", addr.FullAddress())

	short, err := NewAddress("55 Water St", "New York", "10041")
	require.NoError(t, err)
	assert.Equal(t, "55 Water St, New York, 10041", short.FullAddress())

	assert.Equal(t, "", EmptyAddress().FullAddress())
}

func TestAddress_Equals(t *testing.T) {
	a, err := NewAddressFull("123 Harbor Way", "Oakland", "CA", "94607", "USA")
	require.NoError(t, err)
	b, err := NewAddressFull("123 Harbor Way", "Oakland", "CA", "94607", "USA")
	require.NoError(t, err)
	c, err := NewAddressFull("124 Harbor Way", "Oakland", "CA", "94607", "USA")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestAddress_JSONRoundTrip(t *testing.T) {
	addr, err := NewAddressFull("123 Harbor Way", "Oakland", "CA", "94607", "USA")
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"123 Harbor Way","city":"Oakland","state":"CA","postalCode":"94607","country":"USA"}`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, addr.Equals(decoded))
}

func TestAddress_UnmarshalJSON_Invalid(t *testing.T) {
	var addr Address
	err := json.Unmarshal([]byte(`{"street":"","city":"Oakland","postalCode":"94607"}`), &addr)
	require.Error(t, err)
}

func TestAddress_UnmarshalJSON_Empty(t *testing.T) {
	var addr Address
	require.NoError(t, json.Unmarshal([]byte(`{}`), &addr))
	assert.True(t, addr.IsEmpty())
}

func TestAddress_ScanAndValue(t *testing.T) {
	addr, err := NewAddressFull("123 Harbor Way", "Oakland", "CA", "94607", "USA")
	require.NoError(t, err)

	v, err := addr.Value()
	require.NoError(t, err)

	var scanned Address
	require.NoError(t, scanned.Scan(v))
	assert.True(t, addr.Equals(scanned))

	var fromNil Address
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsEmpty())

	emptyVal, err := EmptyAddress().Value()
	require.NoError(t, err)
	assert.Nil(t, emptyVal)
}
