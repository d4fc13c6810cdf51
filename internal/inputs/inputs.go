package inputs

import (
	"os"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// Get returns the action input if set, falling back to the named environment
// variable.
func Get(input string, env string) string {
	if v := githubactions.GetInput(input); v != "" {
		return v
	}

	return os.Getenv(env)
}

// GetBool returns true if the input value is "true", otherwise false
func GetBool(name string) bool {
	return strings.EqualFold(githubactions.GetInput(name), "true")
}

// GetBoolPtr returns nil if the value was unset, true if the input value is "true", otherwise false
func GetBoolPtr(name string) *bool {
	b := githubactions.GetInput(name)

	if b == "" {
		return nil
	}

	bp := strings.EqualFold(b, "true")

	return &bp
}
