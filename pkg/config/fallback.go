package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Loaded is the outcome of a fail-open load. Warning is set when the
// environment value was rejected and the default used instead.
type Loaded[T any] struct {
	Value   T
	Warning string
}

// FallbackApplied reports whether the default replaced a rejected value.
func (l Loaded[T]) FallbackApplied() bool { return l.Warning != "" }

// LoadWithFallback reads key, parses it and validates it. An unset variable
// yields the default silently; a value that fails parsing or validation
// yields the default with a warning. It never fails.
func LoadWithFallback[T any](key string, defaultValue T, parse func(string) (T, error), validate func(T) error) Loaded[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Loaded[T]{Value: defaultValue}
	}
	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return Loaded[T]{
			Value:   defaultValue,
			Warning: fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", key, raw, err, defaultValue),
		}
	}
	return Loaded[T]{Value: v}
}

// ParseString is the identity parser for LoadWithFallback.
func ParseString(s string) (string, error) { return s, nil }

// ParseInt and ParseDuration adapt strconv.Atoi and time.ParseDuration.
var (
	ParseInt      = strconv.Atoi
	ParseDuration = time.ParseDuration
)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks that timezone is a loadable IANA name.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}
