package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// LoadDotEnv loads variables from a .env file. An empty path means ".env"; a missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "unable to load %s", path)
	}

	return nil
}
