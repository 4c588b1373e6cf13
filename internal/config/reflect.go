package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Kind is the type of a config leaf, driving parse and render.
type Kind int

const (
	// KindString is a plain string leaf.
	KindString Kind = iota

	// KindInt is an integer leaf.
	KindInt

	// KindFloat is a floating-point leaf.
	KindFloat

	// KindBool is a boolean leaf.
	KindBool

	// KindStringList is a list-of-strings leaf.
	KindStringList
)

// Leaf describes one addressable config value.
type Leaf struct {
	// Path is the dotted key, always <section>.<field>.
	Path string

	// Kind drives type-directed parsing for set.
	Kind Kind

	// Default is the built-in value when neither file nor environment
	// provides one.
	Default any
}

// Leaves enumerates every dotted config path with its type and default.
// The order is the display order for listing.
func Leaves() []Leaf {
	return []Leaf{
		{"path.root_dir", KindString, defaultRootDir()},
		{"path.tasks_dir", KindString, "tasks"},
		{"path.active_task_file", KindString, "active_task.toml"},
		{"path.log_file", KindString, "rutd.log"},
		{"git.username", KindString, ""},
		{"git.password", KindString, ""},
		{"log.history", KindInt, 100},
		{"log.console", KindBool, false},
		{"task.scopes", KindStringList, []string{"other"}},
		{"task.types", KindStringList, []string{"build", "chore", "ci", "docs", "style", "refactor", "perf", "test"}},
	}
}

func defaultRootDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dotDirName
	}
	return filepath.Join(home, dotDirName)
}

// ListPaths returns every known dotted path.
func ListPaths() []string {
	leaves := Leaves()
	paths := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		paths = append(paths, leaf.Path)
	}
	return paths
}

func findLeaf(path string) (Leaf, error) {
	for _, leaf := range Leaves() {
		if leaf.Path == path {
			return leaf, nil
		}
	}
	return Leaf{}, fmt.Errorf("%w: %s", ErrInvalidConfigKey, path)
}

// Get returns the formatted value for a dotted path: the file value when
// configured there, otherwise the effective runtime value (defaults plus
// environment).
func Get(path string) (string, error) {
	leaf, err := findLeaf(path)
	if err != nil {
		return "", err
	}

	tree, _, err := readFileTree()
	if err != nil {
		return "", err
	}
	if value, ok := lookupTree(tree, path); ok {
		return formatValue(value), nil
	}

	v, err := newViper()
	if err != nil {
		return "", err
	}
	return formatValue(v.Get(leaf.Path)), nil
}

// Set validates the path, parses the value per the leaf's type, and
// rewrites the config file.
func Set(path, valueStr string) error {
	leaf, err := findLeaf(path)
	if err != nil {
		return err
	}
	value, err := leaf.parse(valueStr)
	if err != nil {
		return err
	}

	tree, filePath, err := readFileTree()
	if err != nil {
		return err
	}
	section, field, _ := strings.Cut(path, ".")
	sub, ok := tree[section].(map[string]any)
	if !ok {
		sub = map[string]any{}
		tree[section] = sub
	}
	sub[field] = value

	return writeFileTree(filePath, tree)
}

// Unset removes a leaf from the config file, dropping its section when it
// becomes empty.
func Unset(path string) error {
	if _, err := findLeaf(path); err != nil {
		return err
	}

	tree, filePath, err := readFileTree()
	if err != nil {
		return err
	}
	section, field, _ := strings.Cut(path, ".")
	if sub, ok := tree[section].(map[string]any); ok {
		delete(sub, field)
		if len(sub) == 0 {
			delete(tree, section)
		}
	}

	return writeFileTree(filePath, tree)
}

// Entry is one row of a config listing.
type Entry struct {
	Path  string
	Value string
}

// ListValues returns every known path with its file-configured value, or
// the effective value suffixed "(default)" when it matches the built-in.
func ListValues() ([]Entry, error) {
	tree, _, err := readFileTree()
	if err != nil {
		return nil, err
	}
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(Leaves()))
	for _, leaf := range Leaves() {
		if value, ok := lookupTree(tree, leaf.Path); ok {
			entries = append(entries, Entry{Path: leaf.Path, Value: formatValue(value)})
			continue
		}
		effective := formatValue(v.Get(leaf.Path))
		if effective == formatValue(leaf.Default) {
			effective += " (default)"
		}
		entries = append(entries, Entry{Path: leaf.Path, Value: effective})
	}
	return entries, nil
}

// parse converts a user-supplied string per the leaf's type. Array parsing
// accepts bracket-delimited JSON, otherwise treats the string as a
// one-element list.
func (l Leaf) parse(valueStr string) (any, error) {
	switch l.Kind {
	case KindString:
		return valueStr, nil
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidConfigValue, valueStr)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidConfigValue, valueStr)
		}
		return f, nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidConfigValue, valueStr)
		}
		return b, nil
	case KindStringList:
		trimmed := strings.TrimSpace(valueStr)
		if strings.HasPrefix(trimmed, "[") {
			var list []string
			if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
				return nil, fmt.Errorf("%w: %q is not a JSON string array", ErrInvalidConfigValue, valueStr)
			}
			return list, nil
		}
		return []string{valueStr}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidConfigKey, l.Path)
}

// formatValue renders a config value: arrays as "[a, b, c]", scalars in
// their lexical form.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func lookupTree(tree map[string]any, path string) (any, bool) {
	section, field, _ := strings.Cut(path, ".")
	sub, ok := tree[section].(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := sub[field]
	return value, ok
}

// readFileTree decodes the config file into a nested map, preserving only
// what the user actually wrote. A missing file yields an empty tree.
func readFileTree() (map[string]any, string, error) {
	filePath, err := FilePath()
	if err != nil {
		return nil, "", err
	}

	tree := map[string]any{}
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return tree, filePath, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, "", fmt.Errorf("parse config file: %w", err)
	}
	return tree, filePath, nil
}

func writeFileTree(filePath string, tree map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tree); err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}
	if err := os.WriteFile(filePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
