package report

import (
	"github.com/jenian/credcheck/internal/credentials"
)

// Build turns credential fields into report entries, keeping their order.
// fileSource returns the env file a key was loaded from, or "" when the key
// did not come from a file.
func Build(fields []credentials.Field, fileSource func(key string) string) Report {
	result := Report{
		Entries: make([]Entry, 0, len(fields)),
	}

	for _, f := range fields {
		entry := Entry{Key: f.Key, Value: f.Value, Source: SourceAbsent}
		if f.Value != nil {
			entry.Source = SourceEnvironment
			if fileSource != nil {
				if path := fileSource(f.Key); path != "" {
					entry.Source = path
				}
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	return result
}

// Missing returns the keys that are not set, in report order
func (r Report) Missing() []string {
	missing := []string{}
	for _, e := range r.Entries {
		if e.Value == nil {
			missing = append(missing, e.Key)
		}
	}
	return missing
}
