package nova

import "fmt"

// ConfigError reports a missing or placeholder credential. It is returned
// before any network call is made.
type ConfigError struct {
	Var string // environment variable name, e.g. NOVA_TOKEN
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is not configured: set it in the environment or .env file", e.Var)
}

// HTTPError is a non-2xx response from the Nova API.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string // e.g. "404 Not Found"
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("nova api request failed: %s - %s", e.Status, e.Body)
}

// NetworkError is a transport-level failure talking to the Nova API.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("nova api unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
