package checkout

import (
	"errors"

	"github.com/psknn17/kingsportal/core"
)

var ErrUnknownMethod = errors.New("unknown payment method")

// Payment method ids
const (
	MethodCreditCard  = "credit_card"
	MethodPromptPay   = "promptpay"
	MethodWeChat      = "wechat"
	MethodAlipay      = "alipay"
	MethodBankCounter = "bank_counter"
)

// Method is a payment option with its fee rule. Percentage fees apply to the
// amount after credit; flat fees are added as-is.
type Method struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	FeeRate float64 `json:"fee_rate"`
	FlatFee float64 `json:"flat_fee"`
}

// Methods is the portal's fixed fee table.
var Methods = []Method{
	{ID: MethodCreditCard, Name: "Credit / Debit Card", FeeRate: 0.029},
	{ID: MethodPromptPay, Name: "PromptPay"},
	{ID: MethodWeChat, Name: "WeChat Pay", FeeRate: 0.015},
	{ID: MethodAlipay, Name: "Alipay", FeeRate: 0.015},
	{ID: MethodBankCounter, Name: "Bank Counter", FlatFee: 25},
}

func GetMethod(id string) (Method, error) {
	for _, m := range Methods {
		if m.ID == id {
			return m, nil
		}
	}
	return Method{}, ErrUnknownMethod
}

// Fee computes the payment fee for the given amount, rounded to 2 decimals.
func (m Method) Fee(amount float64) float64 {
	return core.Round2(amount*m.FeeRate) + m.FlatFee
}

// Quotes computes the fee breakdown of every payment method for an amount.
func Quotes(amount float64) []Quote {
	quotes := make([]Quote, 0, len(Methods))
	for _, m := range Methods {
		fee := m.Fee(amount)
		quotes = append(quotes, Quote{
			Method: m.ID,
			Name:   m.Name,
			Fee:    fee,
			Total:  core.Round2(amount + fee),
		})
	}
	return quotes
}
