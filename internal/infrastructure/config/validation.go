package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/themesync/internal/domain/entity"
)

// validateConfig checks normalized values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateAppearance(config)...)
	validationErrors = append(validationErrors, validateAmbient(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateAppearance(config *Config) []string {
	var validationErrors []string
	app := config.Appearance

	if app.StorageKey == "" {
		validationErrors = append(validationErrors, "appearance.storage_key must not be empty")
	}
	if app.ForcedScheme != "" {
		if _, ok := entity.ParseScheme(app.ForcedScheme); !ok {
			validationErrors = append(validationErrors,
				fmt.Sprintf("appearance.forced_scheme must be light, dark or empty (got %q)", app.ForcedScheme))
		}
	}
	if strings.ContainsAny(app.Attribute, " \t=\"'<>") {
		validationErrors = append(validationErrors,
			fmt.Sprintf("appearance.attribute %q is not a valid attribute name", app.Attribute))
	}
	if strings.ContainsAny(app.SecondaryChannel.Name, " \t;,=") {
		validationErrors = append(validationErrors,
			fmt.Sprintf("appearance.secondary_channel.name %q is not a valid cookie name", app.SecondaryChannel.Name))
	}
	if app.SecondaryChannel.Enabled {
		u, err := url.Parse(app.SecondaryChannel.Origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			validationErrors = append(validationErrors,
				fmt.Sprintf("appearance.secondary_channel.origin %q must be an absolute URL", app.SecondaryChannel.Origin))
		}
	}
	return validationErrors
}

func validateAmbient(config *Config) []string {
	if config.Ambient.PollInterval < minPollInterval {
		return []string{fmt.Sprintf("ambient.poll_interval must be at least %s", minPollInterval)}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	return validationErrors
}
