package envfile

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultEnvFile is loaded when nothing else is configured
const DefaultEnvFile = ".env"

// Loader handles loading and parsing environment files
type Loader struct {
	envFiles   []string
	autoDetect bool
}

// NewLoader creates a loader for ./.env with auto detection disabled
func NewLoader() *Loader {
	return &Loader{
		envFiles: []string{DefaultEnvFile},
	}
}

// SetAutoDetect enables or disables automatic detection of env files
func (l *Loader) SetAutoDetect(enabled bool) {
	l.autoDetect = enabled
}

// AddEnvFile adds a custom env file to load
func (l *Loader) AddEnvFile(path string) {
	l.envFiles = append(l.envFiles, path)
}

// SetEnvFiles sets the list of env files to load
func (l *Loader) SetEnvFiles(files []string) {
	l.envFiles = files
}

// Paths returns the explicitly configured files resolved against rootPath,
// whether or not they exist.
func (l *Loader) Paths(rootPath string) []string {
	paths := make([]string, 0, len(l.envFiles))
	for _, envFile := range l.envFiles {
		if filepath.IsAbs(envFile) {
			paths = append(paths, envFile)
		} else {
			paths = append(paths, filepath.Join(rootPath, envFile))
		}
	}
	return paths
}

// Files returns every file the loader reads or would read under rootPath:
// the configured paths, existing or not, followed by auto detected files.
func (l *Loader) Files(rootPath string) []string {
	files := l.Paths(rootPath)
	seen := make(map[string]bool)
	for _, f := range files {
		seen[f] = true
	}
	for _, f := range l.findEnvFiles(rootPath) {
		if !seen[f] {
			files = append(files, f)
			seen[f] = true
		}
	}
	return files
}

// findEnvFiles lists the env files that exist: the configured ones first,
// then auto detected ones in directory order
func (l *Loader) findEnvFiles(rootPath string) []string {
	var files []string
	seen := make(map[string]bool)

	for _, path := range l.Paths(rootPath) {
		if _, err := os.Stat(path); err == nil && !seen[path] {
			files = append(files, path)
			seen[path] = true
		}
	}

	if !l.autoDetect {
		return files
	}

	entries, err := os.ReadDir(rootPath)
	if err != nil {
		log.WithFields(log.Fields{"dir": rootPath, "err": err}).Debug("Cannot read directory for env file detection")
		return files
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		filePath := filepath.Join(rootPath, name)
		if seen[filePath] {
			continue
		}

		include := false
		switch detectFileType(filePath) {
		case typeEnvrc, typeDockerCompose, typeK8s:
			include = true
		case typeDotEnv:
			// The fallback type also covers arbitrary files, only take .env*
			include = strings.HasPrefix(name, ".env") && !isTemplate(name)
		}

		if include {
			files = append(files, filePath)
			seen[filePath] = true
		}
	}

	return files
}

// templateSuffixes mark checked-in examples whose values are placeholders
var templateSuffixes = []string{".example", ".sample", ".template", ".dist"}

// isTemplate reports whether an auto detected file is an example to copy
// from rather than a real env file
func isTemplate(name string) bool {
	for _, suffix := range templateSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Load reads all env files under rootPath and merges them. Later files
// override earlier ones. sources maps each key to the file it came from.
// A file that fails to parse is logged and skipped.
func (l *Loader) Load(rootPath string) (vars map[string]string, sources map[string]string) {
	vars = make(map[string]string)
	sources = make(map[string]string)

	for _, path := range l.findEnvFiles(rootPath) {
		fileVars, err := parseEnvFile(path)
		if err != nil {
			log.WithFields(log.Fields{"file": path, "err": err}).Warn("Skipping env file")
			continue
		}

		log.WithFields(log.Fields{"file": path, "keys": len(fileVars)}).Debug("Loaded env file")
		for k, v := range fileVars {
			vars[k] = v
			sources[k] = path
		}
	}

	return vars, sources
}
