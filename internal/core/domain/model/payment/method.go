package payment

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Method is how the customer paid.
type Method int

const (
	// MethodUnknown (0) is also used by failure entries where no method settled.
	MethodUnknown Method = iota
	Cash
	Card
	QRIS
	Transfer
	Wallet
)

var methodNames = map[Method]string{
	Cash:     "CASH",
	Card:     "CARD",
	QRIS:     "QRIS",
	Transfer: "TRANSFER",
	Wallet:   "WALLET",
}

func ParseMethod(s string) (Method, error) {
	for method, name := range methodNames {
		if name == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a known method", s))
}

func (m Method) Validate() error {
	if _, ok := methodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%d is not a known method", m))
	}
	return nil
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return ""
}

// Kind classifies a ledger entry.
type Kind int

const (
	KindUnknown Kind = iota
	KindPayment
	KindFailure
	KindRefund
)

var kindNames = map[Kind]string{
	KindPayment: "PAYMENT",
	KindFailure: "FAILURE",
	KindRefund:  "REFUND",
}

func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a known entry kind", s))
}

func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a known entry kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}
