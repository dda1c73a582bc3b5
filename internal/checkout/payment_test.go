package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenbytes/internal/checkout"
)

func validAccountForm() checkout.PaymentForm {
	return checkout.PaymentForm{
		Name:          "Thandi",
		Surname:       "Nkosi",
		Method:        checkout.MethodAccount,
		AccountNumber: "1234567890123",
		CVV:           "123",
		Country:       "South Africa",
		Address:       "Main Road",
		StreetNumber:  "42",
	}
}

func TestPaymentFormAccountValid(t *testing.T) {
	require.NoError(t, validAccountForm().Validate())
}

func TestPaymentFormMobileValid(t *testing.T) {
	f := validAccountForm()
	f.Method = checkout.MethodMobile
	f.AccountNumber, f.CVV = "", ""
	f.Mobile = "81234567"
	f.PIN = "4321"
	require.NoError(t, f.Validate())
}

func TestPaymentFormFieldFormats(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*checkout.PaymentForm)
		wantErr string
	}{
		{"short account", func(f *checkout.PaymentForm) { f.AccountNumber = "123456789012" }, "account number must be 13 digits"},
		{"letters in account", func(f *checkout.PaymentForm) { f.AccountNumber = "12345678901ab" }, "account number must be 13 digits"},
		{"short cvv", func(f *checkout.PaymentForm) { f.CVV = "12" }, "CVV must be 3 digits"},
		{"long cvv", func(f *checkout.PaymentForm) { f.CVV = "1234" }, "CVV must be 3 digits"},
		{"unknown method", func(f *checkout.PaymentForm) { f.Method = "cheque" }, "payment method must be account or mobile"},
		{"blank surname", func(f *checkout.PaymentForm) { f.Surname = "  " }, "all fields are required"},
		{"missing street number", func(f *checkout.PaymentForm) { f.StreetNumber = "" }, "all fields are required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validAccountForm()
			tc.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func TestPaymentFormMobileFormats(t *testing.T) {
	f := validAccountForm()
	f.Method = checkout.MethodMobile
	f.Mobile = "8123456" // 7 digits
	f.PIN = "4321"
	err := f.Validate()
	require.Error(t, err)
	assert.Equal(t, "mobile number must be 8 digits", err.Error())

	f.Mobile = "81234567"
	f.PIN = "43210"
	err = f.Validate()
	require.Error(t, err)
	assert.Equal(t, "PIN must be 4 digits", err.Error())
}
