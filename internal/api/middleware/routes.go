package middleware

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteClass is the authentication treatment a path requires.
type RouteClass string

const (
	ClassPublic        RouteClass = "public"
	ClassLogin         RouteClass = "login"
	ClassProtectedAPI  RouteClass = "protected-api"
	ClassProtectedPage RouteClass = "protected-page"
)

func (c RouteClass) valid() bool {
	switch c {
	case ClassPublic, ClassLogin, ClassProtectedAPI, ClassProtectedPage:
		return true
	}
	return false
}

//go:embed routes.yaml
var defaultRoutes []byte

// RouteRule tags every path under Prefix with Class.
type RouteRule struct {
	Prefix string     `yaml:"prefix"`
	Class  RouteClass `yaml:"class"`
}

// RouteTable is the static partition of paths into route classes.
type RouteTable struct {
	LoginPath string      `yaml:"login_path"`
	Rules     []RouteRule `yaml:"routes"`
}

// DefaultRouteTable returns the embedded route table.
func DefaultRouteTable() *RouteTable {
	t, err := ParseRouteTable(defaultRoutes)
	if err != nil {
		panic(fmt.Sprintf("middleware: embedded route table: %v", err))
	}
	return t
}

// LoadRouteTable reads a route table from file, or returns the embedded
// default when file is empty.
func LoadRouteTable(file string) (*RouteTable, error) {
	if file == "" {
		return DefaultRouteTable(), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read route table: %w", err)
	}
	return ParseRouteTable(data)
}

// ParseRouteTable decodes and validates a YAML route table.
func ParseRouteTable(data []byte) (*RouteTable, error) {
	var t RouteTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode route table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(t.Rules, func(i, j int) bool {
		return len(t.Rules[i].Prefix) > len(t.Rules[j].Prefix)
	})
	return &t, nil
}

func (t *RouteTable) validate() error {
	seen := make(map[string]struct{}, len(t.Rules))
	for _, r := range t.Rules {
		if !strings.HasPrefix(r.Prefix, "/") || (r.Prefix != "/" && strings.HasSuffix(r.Prefix, "/")) {
			return fmt.Errorf("route table: invalid prefix %q", r.Prefix)
		}
		if !r.Class.valid() {
			return fmt.Errorf("route table: prefix %q has unknown class %q", r.Prefix, r.Class)
		}
		if _, dup := seen[r.Prefix]; dup {
			return fmt.Errorf("route table: duplicate prefix %q", r.Prefix)
		}
		seen[r.Prefix] = struct{}{}
	}
	if t.LoginPath == "" {
		return errors.New("route table: login_path is required")
	}
	// A login surface that needs a token would redirect to itself forever.
	if c := t.Classify(t.LoginPath); c != ClassLogin && c != ClassPublic {
		return fmt.Errorf("route table: login_path %q is classified %q", t.LoginPath, c)
	}
	return nil
}

// Classify returns the class of the longest prefix matching p.
func (t *RouteTable) Classify(p string) RouteClass {
	p = path.Clean("/" + p)
	best, bestLen := ClassPublic, -1
	for _, r := range t.Rules {
		if len(r.Prefix) > bestLen && matchesPrefix(p, r.Prefix) {
			best, bestLen = r.Class, len(r.Prefix)
		}
	}
	return best
}

func matchesPrefix(p, prefix string) bool {
	if prefix == "/" || p == prefix {
		return true
	}
	return strings.HasPrefix(p, prefix+"/")
}
