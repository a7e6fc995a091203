package msgcat

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/baweed/shashki/game/core"
	"github.com/baweed/shashki/game/obslog"
)

//go:embed messages.*.yaml
var defaultFiles embed.FS

// Catalog holds the UI strings of one locale as text/template sources keyed
// by dotted path ("banner.win").
type Catalog struct {
	mu     sync.RWMutex
	locale string
	data   map[string]string
}

// New loads the embedded messages for locale and applies every YAML file in
// overrideDir on top, if given.
func New(locale, overrideDir string) (*Catalog, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = "ru"
	}
	c := &Catalog{locale: locale, data: make(map[string]string)}

	if err := c.loadEmbedded(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(overrideDir) != "" {
		if err := c.applyDir(overrideDir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) Locale() string { return c.locale }

func (c *Catalog) loadEmbedded() error {
	name := "messages." + c.locale + ".yaml"
	raw, err := fs.ReadFile(defaultFiles, name)
	if err != nil {
		return fmt.Errorf("unsupported locale %q: %w", c.locale, err)
	}
	return c.applyYAML(raw)
}

func (c *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read messages dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	seen := make(map[string]string)
	for _, name := range files {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		flat, err := parseYAMLToFlat(b)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		for k := range flat {
			if prev, ok := seen[k]; ok {
				return fmt.Errorf("duplicate override key %q in %s and %s", k, prev, name)
			}
			seen[k] = name
		}
		c.merge(flat)
	}
	return nil
}

func (c *Catalog) applyYAML(b []byte) error {
	flat, err := parseYAMLToFlat(b)
	if err != nil {
		return err
	}
	c.merge(flat)
	return nil
}

func (c *Catalog) merge(flat map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range flat {
		c.data[k] = v
	}
}

func parseYAMLToFlat(b []byte) (map[string]string, error) {
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	if err := flattenStrings(m, "", flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func flattenStrings(src any, prefix string, out map[string]string) error {
	switch v := src.(type) {
	case map[string]any:
		for k, vv := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := flattenStrings(vv, key, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if prefix == "" {
			return errors.New("string value without key")
		}
		out[prefix] = v
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported value at %s: %T", prefix, v)
	}
}

// Render executes the template stored under key. Missing keys and missing
// template fields are errors.
func (c *Catalog) Render(key string, data any) (string, error) {
	c.mu.RLock()
	tpl, ok := c.data[strings.TrimSpace(key)]
	c.mu.RUnlock()
	if !ok || strings.TrimSpace(tpl) == "" {
		return "", fmt.Errorf("template not found: %s", key)
	}
	t, err := template.New(key).Option("missingkey=error").Parse(tpl)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Text renders key and falls back to the key itself, logging the failure.
func (c *Catalog) Text(key string, data any) string {
	s, err := c.Render(key, data)
	if err != nil {
		obslog.L().Warn("msgcat_render_failed", zap.String("key", key), zap.String("locale", c.locale), zap.Error(err))
		return key
	}
	return s
}

func (c *Catalog) Side(color core.Color) string {
	return c.Text("side."+color.String(), nil)
}

// Banner is the end-of-game line, or "" while the game goes on.
func (c *Catalog) Banner(r core.Result) string {
	switch r {
	case core.WhiteWins, core.BlackWins:
		return c.Text("banner.win", map[string]any{"Side": c.Side(r.Winner())})
	case core.Draw:
		return c.Text("banner.draw", nil)
	default:
		return ""
	}
}

func (c *Catalog) Turn(color core.Color) string {
	return c.Text("turn", map[string]any{"Side": c.Side(color)})
}
