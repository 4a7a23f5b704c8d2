package config

import (
	"os"
	"path/filepath"

	"fjacquet/pdf-expenses/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file in the working directory or its
// parent. Variables already set in the environment win. It returns the file
// that was loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.GetLogger()
	}
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return ""
		}
		logger.Debug("Loaded environment variables", logging.Field{Key: logging.FieldFile, Value: candidate})
		return candidate
	}
	return ""
}
