package driven

// ConfigStore holds user settings under dotted keys such as
// "sync.debounce" or "parser.default_year".
//
// The typed getters return the zero value when a key is missing or holds
// a value of another type. Set and Delete persist at once.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	Set(key string, value any) error
	// Delete ignores missing keys.
	Delete(key string) error
	// Keys lists every key that is set, sorted.
	Keys() []string

	Save() error
	Load() error
	// Path is where the settings live, for display.
	Path() string
}
