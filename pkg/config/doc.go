// Package config loads application settings from environment variables into
// tagged structs.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//	type CLIConfig struct {
//	    Definition string `env:"FSM_DEFINITION,required"`
//	    LogFormat  string `env:"FSM_LOG_FORMAT" envDefault:"text"`
//	}
//
//	if err := config.LoadEnv("./.env.local"); err != nil {
//	    log.Fatal(err)
//	}
//	var cfg CLIConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once and cached for the process lifetime.
// Tests can call ResetCache or ForceReload after changing the environment.
//
// Errors wrap the sentinel values ErrParsingConfig, ErrLoadingEnvFile and
// ErrNilPointer and can be checked with errors.Is.
package config
