package enums

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		input string
		want  PaymentMethod
		ok    bool
	}{
		{"cod", PaymentMethodCOD, true},
		{"upi", PaymentMethodUPI, true},
		{"netbanking", PaymentMethodNetbanking, true},
		{"cheque", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := ParsePaymentMethod(tc.input)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParsePaymentMethod(%q) = %q, %v; want %q", tc.input, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParsePaymentMethod(%q) should fail", tc.input)
		}
	}
}

func TestDiscountTypeValidity(t *testing.T) {
	if !DiscountTypePercentage.IsValid() || !DiscountTypeFixed.IsValid() {
		t.Fatal("known discount types should be valid")
	}
	if DiscountType("bogo").IsValid() {
		t.Fatal("unknown discount type should be invalid")
	}
}

func TestSubmissionStatusTerminal(t *testing.T) {
	if SubmissionStatusPending.Terminal() {
		t.Fatal("pending is not terminal")
	}
	if !SubmissionStatusSucceeded.Terminal() || !SubmissionStatusFailed.Terminal() {
		t.Fatal("succeeded and failed are terminal")
	}
}

func TestParseCurrency(t *testing.T) {
	if got, err := ParseCurrency("INR"); err != nil || got != CurrencyINR {
		t.Fatalf("ParseCurrency(INR) = %q, %v", got, err)
	}
	if _, err := ParseCurrency("USD"); err == nil {
		t.Fatal("unsupported currency should fail")
	}
}
