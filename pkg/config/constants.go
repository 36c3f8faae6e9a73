package config

const (
	// EnvPrefix is the envconfig prefix shared by every variable.
	EnvPrefix = "EWASTE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "EWASTE_APP_ENV"

	EnvDBDSN  = "EWASTE_DB_DSN"
	EnvDBHost = "EWASTE_DB_HOST"
	EnvDBUser = "EWASTE_DB_USER"
	EnvDBName = "EWASTE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
