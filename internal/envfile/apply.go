package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Applier writes loaded variables into the process environment. Variables
// present when the Applier was created are never overwritten, so the
// inherited environment always wins over env files.
type Applier struct {
	inherited map[string]bool
	applied   map[string]string // key -> file it was loaded from
}

// NewApplier snapshots the current process environment
func NewApplier() *Applier {
	inherited := make(map[string]bool)
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if key != "" {
			inherited[key] = true
		}
	}
	return &Applier{
		inherited: inherited,
		applied:   make(map[string]string),
	}
}

// Apply removes whatever a previous Apply set, then sets every variable in
// vars that was not inherited. sources maps keys to their file.
func (a *Applier) Apply(vars map[string]string, sources map[string]string) error {
	if err := a.Reset(); err != nil {
		return err
	}

	for k, v := range vars {
		if a.inherited[k] {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
		a.applied[k] = sources[k]
	}
	return nil
}

// Reset unsets every variable set by Apply
func (a *Applier) Reset() error {
	for k := range a.applied {
		if err := os.Unsetenv(k); err != nil {
			return fmt.Errorf("failed to unset %s: %w", k, err)
		}
		delete(a.applied, k)
	}
	return nil
}

// Source returns the file a variable was applied from, or "" when the
// variable did not come from an env file.
func (a *Applier) Source(key string) string {
	return a.applied[key]
}
