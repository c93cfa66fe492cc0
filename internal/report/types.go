package report

// Sources of a credential value
const (
	SourceEnvironment = "environment" // inherited from the parent process
	SourceAbsent      = ""            // not set anywhere
)

// Entry is one line of the report
type Entry struct {
	Key    string  // Environment variable name, also used as the label
	Value  *string // nil when the variable is not set
	Source string  // SourceEnvironment, the env file path, or SourceAbsent
}

// Report contains the credentials in their fixed output order
type Report struct {
	Entries []Entry
}
