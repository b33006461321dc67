package config

import "fmt"

// ConfigError reports an invalid user-supplied setting. The process exits
// with status 2 on these, before any drawing starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// ResourceError reports a failure to acquire something the run needs: an
// image file, a URL, a font, the target window.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
