package config

const (
	EnvPrefix = "SWIFTKART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv          = "SWIFTKART_APP_ENV"
	EnvPort            = "SWIFTKART_APP_PORT"
	EnvDBDSN           = "SWIFTKART_DB_DSN"
	EnvRedisURL        = "SWIFTKART_REDIS_URL"
	EnvJWTSecret       = "SWIFTKART_JWT_SECRET"
	EnvJWTIssuer       = "SWIFTKART_JWT_ISSUER"
	EnvOrderAPIBaseURL = "SWIFTKART_ORDER_API_BASE_URL"
)
