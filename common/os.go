package common

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GetenvOrDefault wraps os.Getenv with a fallback for an unset or blank key.
func GetenvOrDefault(key, defaultValue string) string {
	str := os.Getenv(key)
	if strings.TrimSpace(str) == "" {
		return defaultValue
	}

	return str
}

// GetenvBoolOrDefault parses os.Getenv(key) as a bool, falling back to
// defaultValue when unset or unparseable.
func GetenvBoolOrDefault(key string, defaultValue bool) bool {
	str := os.Getenv(key)

	val, err := strconv.ParseBool(str)
	if err != nil {
		return defaultValue
	}

	return val
}

// GetenvIntOrDefault parses os.Getenv(key) as an int64, falling back to
// defaultValue when unset or unparseable.
func GetenvIntOrDefault(key string, defaultValue int64) int64 {
	str := os.Getenv(key)

	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return defaultValue
	}

	return val
}

// SetConfigFromEnvVars populates every field of s (a pointer to a struct)
// tagged `env:"KEY"` from the process environment. Supports string, bool,
// and integer fields.
func SetConfigFromEnvVars(s any) error {
	v := reflect.ValueOf(s)

	t := v.Type()
	if t.Kind() != reflect.Ptr {
		return errors.New("s must be a pointer")
	}

	e := t.Elem()
	for i := 0; i < e.NumField(); i++ {
		f := e.Field(i)

		tag, ok := f.Tag.Lookup("env")
		if !ok {
			continue
		}

		values := strings.Split(tag, ",")
		if len(values) == 0 {
			continue
		}

		fv := v.Elem().FieldByName(f.Name)
		if !fv.CanSet() {
			continue
		}

		switch fv.Kind() {
		case reflect.Bool:
			fv.SetBool(GetenvBoolOrDefault(values[0], false))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fv.SetInt(GetenvIntOrDefault(values[0], 0))
		default:
			fv.SetString(os.Getenv(values[0]))
		}
	}

	return nil
}
