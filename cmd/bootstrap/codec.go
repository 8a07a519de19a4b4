package bootstrap

import (
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/opaqueid"

	"go.uber.org/fx"
)

var CodecModule = fx.Module("codec",
	fx.Provide(
		NewIDCodec,
	),
)

func NewIDCodec(cfg config.Config) (*opaqueid.Codec, error) {
	return opaqueid.NewCodec(cfg.IDCodec.Key)
}
