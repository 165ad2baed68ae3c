package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv seeds the process environment from CALC_ENV_FILE, or .env when
// that is unset, before config.Load reads the CALC_* variables. Variables
// already set in the process win. A missing default file is fine; a missing
// file named explicitly is an error.
func loadDotEnv() error {
	path, explicit := os.LookupEnv("CALC_ENV_FILE")
	if !explicit || path == "" {
		path = ".env"
		explicit = false
	}

	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return nil
	default:
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
}
