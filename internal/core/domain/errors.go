package domain

import "fmt"

// ConfigurationError reports a missing or invalid setting: an empty or
// unknown bundle, or an asset host required but not configured
type ConfigurationError struct {
	Subject string // Bundle name, command or setting
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Subject == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Subject, e.Message)
}

// NewConfigurationError creates a ConfigurationError with a formatted message
func NewConfigurationError(subject, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// MissingAssetReference is a url() target that could not be found on disk
// while stamping modification times. It is never fatal.
type MissingAssetReference struct {
	URL  string // As written in the stylesheet
	Path string // Resolved filesystem path
	Err  error
}

func (m MissingAssetReference) Error() string {
	return fmt.Sprintf("asset %s not found at %s: %v", m.URL, m.Path, m.Err)
}

func (m MissingAssetReference) Unwrap() error {
	return m.Err
}
