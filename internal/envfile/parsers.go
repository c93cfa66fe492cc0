package envfile

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File types understood by the loader
const (
	typeDotEnv        = "env"
	typeEnvrc         = "envrc"
	typeDockerCompose = "docker-compose"
	typeK8s           = "k8s"
)

var exportRegex = regexp.MustCompile(`^\s*export\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// detectFileType determines the type of an env source from its filename
func detectFileType(path string) string {
	filename := filepath.Base(path)

	if filename == ".envrc" {
		return typeEnvrc
	}

	if strings.HasPrefix(filename, ".env") {
		return typeDotEnv
	}

	isYAML := strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")

	if isYAML && strings.HasPrefix(filename, "docker-compose") {
		return typeDockerCompose
	}

	if isYAML && (strings.Contains(filename, "configmap") || strings.Contains(filename, "secret")) {
		return typeK8s
	}

	// Anything else passed explicitly is treated as a dotenv file
	return typeDotEnv
}

// parseEnvFile parses a single env source using the parser for its type.
// A file that does not exist yields an empty map.
func parseEnvFile(path string) (map[string]string, error) {
	switch detectFileType(path) {
	case typeEnvrc:
		return parseEnvrc(path)
	case typeDockerCompose:
		return parseDockerCompose(path)
	case typeK8s:
		return parseK8s(path)
	default:
		return parseDotEnv(path)
	}
}

// parseDotEnv parses a KEY=VALUE file
func parseDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return vars, nil
}

// parseEnvrc picks the export lines out of a direnv .envrc, ignoring
// everything else the script does
func parseEnvrc(path string) (map[string]string, error) {
	vars := make(map[string]string)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		matches := exportRegex.FindStringSubmatch(line)
		if len(matches) == 3 {
			vars[matches[1]] = trimQuotes(matches[2])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return vars, nil
}

type composeFile struct {
	Services map[string]struct {
		Environment yaml.Node `yaml:"environment"`
	} `yaml:"services"`
}

// parseDockerCompose collects the environment sections of every service.
// Both the mapping and the list ("KEY=VALUE") forms are accepted.
func parseDockerCompose(path string) (map[string]string, error) {
	vars := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}

	var compose composeFile
	if err := yaml.Unmarshal(data, &compose); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	for _, service := range compose.Services {
		env := service.Environment
		switch env.Kind {
		case yaml.MappingNode:
			var m map[string]string
			if err := env.Decode(&m); err != nil {
				return nil, fmt.Errorf("error parsing %s: %w", path, err)
			}
			for k, v := range m {
				vars[k] = v
			}
		case yaml.SequenceNode:
			var list []string
			if err := env.Decode(&list); err != nil {
				return nil, fmt.Errorf("error parsing %s: %w", path, err)
			}
			for _, item := range list {
				key, value, ok := strings.Cut(item, "=")
				if ok {
					vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
				}
			}
		}
	}

	return vars, nil
}

type k8sObject struct {
	Kind       string            `yaml:"kind"`
	Data       map[string]string `yaml:"data"`
	StringData map[string]string `yaml:"stringData"`
}

// parseK8s reads the data of a ConfigMap or Secret manifest. Secret data is
// base64 encoded; values that fail to decode are kept as-is.
func parseK8s(path string) (map[string]string, error) {
	vars := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}

	var obj k8sObject
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	switch obj.Kind {
	case "ConfigMap":
		for k, v := range obj.Data {
			vars[k] = v
		}
	case "Secret":
		for k, v := range obj.Data {
			if decoded, err := base64.StdEncoding.DecodeString(v); err == nil {
				vars[k] = string(decoded)
			} else {
				vars[k] = v
			}
		}
		// stringData takes precedence, as the API server does
		for k, v := range obj.StringData {
			vars[k] = v
		}
	}

	return vars, nil
}

// trimQuotes removes surrounding quotes from a string
func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
