package bootstrap

import (
	"wheelshare/internal/infra/payment"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			NewPaymentClient,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewSignatureVerifier,
			fx.As(new(commands.SignatureVerifier)),
		),
	),
)

func NewPaymentClient(cfg config.Config) *payment.Client {
	return payment.NewClient(cfg.Gateway)
}

func NewSignatureVerifier(cfg config.Config) *payment.HMACVerifier {
	return payment.NewHMACVerifier(cfg.Gateway.Secret)
}
