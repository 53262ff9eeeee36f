package configs

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// NewMidtransSnapClient returns nil when no server key is configured, in
// which case orders are recorded without a payment page.
func NewMidtransSnapClient(env ENV) *snap.Client {
	if env.MidtransServerKey == "" {
		return nil
	}

	var client snap.Client
	client.New(env.MidtransServerKey, midtrans.Sandbox)
	midtrans.ClientKey = env.MidtransClientKey
	midtrans.ServerKey = env.MidtransServerKey
	midtrans.Environment = midtrans.Sandbox
	return &client
}
