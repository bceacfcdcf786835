package env

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"browser-actions/internal/application/port/output"

	"github.com/joho/godotenv"
)

var _ output.ConfigPort = (*EnvService)(nil)

const (
	KeyBrowserHeadless   = "BROWSER_HEADLESS"
	KeyBrowserControlURL = "BROWSER_CONTROL_URL"
	KeyBrowserSlowMotion = "BROWSER_SLOW_MOTION_MS"
	KeyBrowserNoSandbox  = "BROWSER_NO_SANDBOX"
	KeyLocatorStrategy   = "ACTIONS_LOCATOR"
	KeyWaitSeconds       = "ACTIONS_WAIT_SECONDS"
	KeyLogLevel          = "LOG_LEVEL"
)

type EnvService struct{}

// NewEnvService loads .env and then .env.<APP_ENV> over it. Missing files
// are not an error.
func NewEnvService() *EnvService {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	_ = godotenv.Load(".env")

	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load %s: %v", envFile, err)
	}

	return &EnvService{}
}

func (e *EnvService) Get(key string) string {
	return os.Getenv(key)
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (e *EnvService) GetFloat(key string, defaultValue float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
