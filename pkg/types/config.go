package types

import "errors"

// Config holds backend selection and parameters for opening a store.
type Config struct {
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// Supported backend names. BackendSQLite is the embedded SQL engine;
// BackendDocstore is the structured object store that emulates the SQL
// subset over JSONL collections.
const (
	BackendSQLite   = "sqlite"
	BackendDocstore = "docstore"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendDocstore: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
