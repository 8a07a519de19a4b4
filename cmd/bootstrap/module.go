package bootstrap

import (
	"wheelshare/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	CodecModule,
	PaymentModule,
	SweeperModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
