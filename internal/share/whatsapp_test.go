package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name        string
		raw         string
		countryCode string
		want        string
	}{
		{"local trunk zero gets country code", "0501234567", "", "972501234567"},
		{"explicit country code override", "0501234567", "44", "44501234567"},
		{"already international with plus", "+972501234567", "", "972501234567"},
		{"plus keeps digits even with leading zero after it", "+49040123", "", "49040123"},
		{"separators stripped", "050-123 45(67)", "", "972501234567"},
		{"no trunk zero left untouched", "972501234567", "", "972501234567"},
		{"empty input", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.raw, tc.countryCode))
		})
	}
}

func TestWhatsAppLinkEncodesMessage(t *testing.T) {
	link, err := WhatsAppLink("0501234567", "Invoice 42\nTotal: 1440.00", "")
	require.NoError(t, err)

	assert.Equal(t, "https://wa.me/972501234567?text=Invoice+42%0ATotal%3A+1440.00", link)
}

func TestWhatsAppLinkRequiresPhone(t *testing.T) {
	_, err := WhatsAppLink("", "hello", "")
	assert.Error(t, err)

	_, err = WhatsAppLink("- ()", "hello", "")
	assert.Error(t, err)
}
