package checkout

import (
	"errors"
	"strings"

	"greenbytes/internal/validate"
)

// Payment methods.
const (
	MethodAccount = "account"
	MethodMobile  = "mobile"
)

// PaymentForm carries the customer's payment details, validated before
// the reconciler touches the network.
type PaymentForm struct {
	Name          string
	Surname       string
	Method        string // account | mobile
	AccountNumber string
	CVV           string
	Mobile        string
	PIN           string
	Country       string
	Address       string
	StreetNumber  string
}

// Validate enforces the payment-field formats and required fields.
func (f PaymentForm) Validate() error {
	switch f.Method {
	case MethodAccount:
		if !validate.AccountNumber(f.AccountNumber) {
			return errors.New("account number must be 13 digits")
		}
		if !validate.CVV(f.CVV) {
			return errors.New("CVV must be 3 digits")
		}
	case MethodMobile:
		if !validate.Mobile(f.Mobile) {
			return errors.New("mobile number must be 8 digits")
		}
		if !validate.PIN(f.PIN) {
			return errors.New("PIN must be 4 digits")
		}
	default:
		return errors.New("payment method must be account or mobile")
	}

	for _, field := range []string{f.Name, f.Surname, f.Country, f.Address, f.StreetNumber} {
		if strings.TrimSpace(field) == "" {
			return errors.New("all fields are required")
		}
	}
	return nil
}
