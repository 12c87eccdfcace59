package driven

// ConfigStore is read access to one configuration file. Tables are
// flattened, so keys are dot-separated paths such as "push.batch_size".
// Getters return the zero value when the key is missing or has another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	Has(key string) bool

	GetString(key string) string

	// GetInt accepts TOML integers and floats.
	GetInt(key string) int
	GetBool(key string) bool

	// GetStringSlice returns a single string as a one-element slice.
	GetStringSlice(key string) []string

	// Sections returns the sorted names of the tables directly under
	// prefix, e.g. the <name> of every [servers.<name>] table.
	Sections(prefix string) []string

	// Load (re)reads the file. A missing file is not an error.
	Load() error

	// Path returns where the configuration is read from.
	Path() string
}
