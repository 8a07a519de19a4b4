package response

import "wheelshare/internal/usecase/commands"

type OrderResponse struct {
	OrderRef    string `json:"orderRef"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
}

func FromOrderResult(res *commands.CreateOrderResult) *OrderResponse {
	return &OrderResponse{
		OrderRef:    res.OrderRef,
		AmountCents: res.AmountCents,
		Currency:    res.Currency,
	}
}
