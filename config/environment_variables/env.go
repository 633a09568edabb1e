package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	DB_POSTGRESQL_WRITE_DSN string
	DB_POSTGRESQL_READ1_DSN string
	ENABLE_ADMIN_API        bool
	CACHE_TYPE              string
	CACHE_URL               string
	CACHE_PASSWORD          string
	CACHE_DB                string
	REDIS_URL               string
	REDIS_PASSWORD          string
	REDIS_DB                string
	NATS_URL                string
	ADMIN_JWT_SECRET        string
	ALLOWED_CORS_HOSTS      []string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s", envKey)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Bool:
			if parsed, err := strconv.ParseBool(envValue); err == nil {
				v.Field(i).SetBool(parsed)
			}
		case reflect.Slice:
			v.Field(i).Set(reflect.ValueOf(strings.Split(envValue, ",")))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
