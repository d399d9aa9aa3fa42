package checkout

import "testing"

func TestMethod_Fee(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		amount  float64
		wantFee float64
	}{
		{name: "credit card 2.9%", method: MethodCreditCard, amount: 1000, wantFee: 29},
		{name: "credit card rounds", method: MethodCreditCard, amount: 1234.56, wantFee: 35.8},
		{name: "promptpay is free", method: MethodPromptPay, amount: 2000, wantFee: 0},
		{name: "wechat 1.5%", method: MethodWeChat, amount: 1000, wantFee: 15},
		{name: "alipay 1.5%", method: MethodAlipay, amount: 1000, wantFee: 15},
		{name: "bank counter flat", method: MethodBankCounter, amount: 1000, wantFee: 25},
		{name: "bank counter flat on zero", method: MethodBankCounter, amount: 0, wantFee: 25},
		{name: "zero amount", method: MethodCreditCard, amount: 0, wantFee: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := GetMethod(tt.method)
			if err != nil {
				t.Fatalf("GetMethod() error = %v", err)
			}
			if fee := m.Fee(tt.amount); fee != tt.wantFee {
				t.Errorf("Fee(%v) = %v, want %v", tt.amount, fee, tt.wantFee)
			}
		})
	}
}

func TestGetMethod_unknown(t *testing.T) {
	if _, err := GetMethod("cash"); err != ErrUnknownMethod {
		t.Errorf("GetMethod() error = %v, want %v", err, ErrUnknownMethod)
	}
}

func TestQuotes(t *testing.T) {
	quotes := Quotes(2000)
	if len(quotes) != len(Methods) {
		t.Fatalf("len(Quotes()) = %v, want %v", len(quotes), len(Methods))
	}

	want := map[string]float64{
		MethodCreditCard:  2058,
		MethodPromptPay:   2000,
		MethodWeChat:      2030,
		MethodAlipay:      2030,
		MethodBankCounter: 2025,
	}
	for _, q := range quotes {
		if q.Total != want[q.Method] {
			t.Errorf("Quotes()[%s].Total = %v, want %v", q.Method, q.Total, want[q.Method])
		}
	}
}
