package qrgen

import (
	"github.com/spf13/viper"
)

// Config holds service-level limits and policy knobs.
type Config struct {
	// MaxLogoBytes caps the multipart logo upload read by transport.
	MaxLogoBytes int64 `mapstructure:"max_logo_bytes"`
	// MaxBatchItems caps a single batch request.
	MaxBatchItems int `mapstructure:"max_batch_items"`
	// CORSAllowedOrigins feeds the CORS middleware.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("max_logo_bytes"), int64(4<<20))
	v.SetDefault(p("max_batch_items"), 100)
	v.SetDefault(p("cors_allowed_origins"), []string{"*"})
}
