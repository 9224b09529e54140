package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	satori "github.com/satori/go.uuid"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// GetUniqueIDFromDate returns a time based (version 1) UUID.
func GetUniqueIDFromDate() string {
	return satori.Must(satori.NewV1(), nil).String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func GetENVInt(key string, defaultValue int) int {
	v, found := os.LookupEnv(key)
	if !found {
		return defaultValue
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warn("invalid integer in environment; default is used", "key", key, "value", v, "default", defaultValue)
		return defaultValue
	}

	return i
}

func GetENVDuration(key string, defaultValue time.Duration) time.Duration {
	v, found := os.LookupEnv(key)
	if !found {
		return defaultValue
	}

	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		log.Warn("invalid duration in environment; default is used", "key", key, "value", v, "default", defaultValue)
		return defaultValue
	}

	return d
}
