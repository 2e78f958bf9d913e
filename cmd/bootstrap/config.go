package bootstrap

import (
	"ghar-ko-sathi/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
	),
)

// LoadConfig reads a local .env when present, then the process environment.
func LoadConfig() (config.Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return config.LoadConfig()
}
