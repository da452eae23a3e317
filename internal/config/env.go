package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() error {
	var present []string
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}
