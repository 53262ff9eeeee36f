package models

import "github.com/shopspring/decimal"

type PromotionCode struct {
	Code       string          `json:"code"`
	PercentOff decimal.Decimal `json:"percentOff"`
}
