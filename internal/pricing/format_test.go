package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatINRGrouping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"199", "₹199.00"},
		{"1234", "₹1,234.00"},
		{"35599", "₹35,599.00"},
		{"123456.78", "₹1,23,456.78"},
		{"12345678.90", "₹1,23,45,678.90"},
		{"-500", "-₹500.00"},
	}
	for _, tc := range cases {
		if got := FormatINR(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("FormatINR(%s): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
