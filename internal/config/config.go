// Package config loads dialogctl settings and the dialog catalog from
// dialogctl.toml or dialogctl.yaml.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/glamour/styles"
	"gopkg.in/yaml.v3"

	"github.com/rfhold/dialogctl/internal/dialog"
	"github.com/rfhold/dialogctl/internal/ui"
)

// FileNames are the config files looked up by Discover, in priority order.
var FileNames = []string{"dialogctl.toml", "dialogctl.yaml", "dialogctl.yml"}

// ReservedKeys cannot be used as dialog trigger keys.
var ReservedKeys = []string{"q", "ctrl+c", "?", "esc", "tab", "shift+tab", "enter", " ", "up", "down", "k", "j", "pgup", "pgdown"}

// Settings controls dialog behavior and sizing. Nil fields take defaults.
type Settings struct {
	// TransitionMS is the open/close animation length in milliseconds.
	// Default: 120
	TransitionMS *int `yaml:"transition_ms,omitempty" toml:"transition_ms,omitempty"`
	// OverflowFix enables the scrollable resync retries after each layout.
	// Default: true
	OverflowFix *bool `yaml:"overflow_fix,omitempty" toml:"overflow_fix,omitempty"`
	// OverflowFixRetries is the number of resync retries. Default: 5
	OverflowFixRetries *int `yaml:"overflow_fix_retries,omitempty" toml:"overflow_fix_retries,omitempty"`
	// OverflowFixIntervalMS spaces the retries. Default: 100
	OverflowFixIntervalMS *int `yaml:"overflow_fix_interval_ms,omitempty" toml:"overflow_fix_interval_ms,omitempty"`
	// ScrimAction is reported when the backdrop is clicked; an empty string
	// disables backdrop dismissal. Default: "close"
	ScrimAction *string `yaml:"scrim_action,omitempty" toml:"scrim_action,omitempty"`

	MaxWidth      int    `yaml:"max_width,omitempty" toml:"max_width,omitempty"`
	MaxBodyHeight int    `yaml:"max_body_height,omitempty" toml:"max_body_height,omitempty"`
	MarkdownStyle string `yaml:"markdown_style,omitempty" toml:"markdown_style,omitempty"`
}

// TransitionDuration returns the configured animation length
func (s Settings) TransitionDuration() time.Duration {
	if s.TransitionMS == nil {
		return dialog.DefaultTransitionDuration
	}
	return time.Duration(*s.TransitionMS) * time.Millisecond
}

// OverflowFixEnabled returns whether the overflow fix pass runs
func (s Settings) OverflowFixEnabled() bool {
	if s.OverflowFix == nil {
		return true // default
	}
	return *s.OverflowFix
}

// OverflowFixRetriesOrDefault returns the retry count, 0 when disabled
func (s Settings) OverflowFixRetriesOrDefault() int {
	if !s.OverflowFixEnabled() {
		return 0
	}
	if s.OverflowFixRetries == nil {
		return dialog.DefaultOverflowFixRetries
	}
	return *s.OverflowFixRetries
}

// OverflowFixInterval returns the spacing between retries
func (s Settings) OverflowFixInterval() time.Duration {
	if s.OverflowFixIntervalMS == nil {
		return dialog.DefaultOverflowFixInterval
	}
	return time.Duration(*s.OverflowFixIntervalMS) * time.Millisecond
}

// Scrim returns the backdrop action and whether backdrop clicks close the dialog
func (s Settings) Scrim() (action string, enabled bool) {
	if s.ScrimAction == nil {
		return ui.DefaultScrimAction, true
	}
	return *s.ScrimAction, *s.ScrimAction != ""
}

// SurfaceOptions converts the settings into ui surface options.
func (s Settings) SurfaceOptions(focus *ui.FocusStack) ui.SurfaceOptions {
	action, enabled := s.Scrim()
	return ui.SurfaceOptions{
		MaxWidth:      s.MaxWidth,
		MaxBodyHeight: s.MaxBodyHeight,
		ScrimAction:   action,
		DisableScrim:  !enabled,
		MarkdownStyle: s.MarkdownStyle,
		Focus:         focus,
	}
}

// ControllerOptions converts the settings into controller options.
func (s Settings) ControllerOptions() []dialog.Option {
	return []dialog.Option{
		dialog.WithTransitionDuration(s.TransitionDuration()),
		dialog.WithOverflowFix(s.OverflowFixRetriesOrDefault(), s.OverflowFixInterval()),
	}
}

// ButtonSpec is one button of a catalog dialog
type ButtonSpec struct {
	ID     string `yaml:"id,omitempty" toml:"id,omitempty"`
	Label  string `yaml:"label" toml:"label"`
	Action string `yaml:"action,omitempty" toml:"action,omitempty"`
	URL    string `yaml:"url,omitempty" toml:"url,omitempty"`
}

// DialogSpec is one catalog dialog
type DialogSpec struct {
	Title    string       `yaml:"title" toml:"title"`
	Body     string       `yaml:"body" toml:"body"`
	Markdown bool         `yaml:"markdown,omitempty" toml:"markdown,omitempty"`
	Key      string       `yaml:"key" toml:"key"`
	Buttons  []ButtonSpec `yaml:"buttons,omitempty" toml:"buttons,omitempty"`
}

// Content converts the spec into renderable dialog content.
func (d DialogSpec) Content() ui.Content {
	buttons := make([]ui.Button, len(d.Buttons))
	for i, b := range d.Buttons {
		buttons[i] = ui.Button{ID: b.ID, Label: b.Label, Action: b.Action, URL: b.URL}
	}
	return ui.Content{
		Title:    d.Title,
		Body:     d.Body,
		Markdown: d.Markdown,
		Buttons:  buttons,
	}
}

// Config is the full dialogctl configuration
type Config struct {
	Dialog  Settings              `yaml:"dialog" toml:"dialog"`
	Dialogs map[string]DialogSpec `yaml:"dialogs" toml:"dialogs"`
}

// Names returns the dialog names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Dialogs))
	for name := range c.Dialogs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load reads a config file. Files ending in .yaml or .yml are parsed as YAML,
// everything else as TOML. A file without dialogs gets the built-in catalog.
func Load(path string) (*Config, error) {
	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if len(config.Dialogs) == 0 {
		config.Dialogs = Default().Dialogs
	}
	return &config, nil
}

// Discover loads the config from either git root or launch directory.
// Priority: git root > launch directory. Without a config file the built-in
// defaults are returned with an empty path.
func Discover(launchDir string) (*Config, string, error) {
	var dirs []string
	if gitRoot, err := findGitRoot(launchDir); err == nil && gitRoot != "" {
		dirs = append(dirs, gitRoot)
	}
	dirs = append(dirs, launchDir)

	for _, dir := range dirs {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			config, err := Load(path)
			if err != nil {
				return nil, "", fmt.Errorf("failed to load %s: %w", path, err)
			}
			return config, path, nil
		}
	}

	return Default(), "", nil
}

// findGitRoot finds the git repository root from the given directory
func findGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Validate reports every problem in the configuration.
func (c *Config) Validate() error {
	var errs []error

	s := c.Dialog
	if s.TransitionMS != nil && *s.TransitionMS < 0 {
		errs = append(errs, fmt.Errorf("dialog.transition_ms must not be negative, got %d", *s.TransitionMS))
	}
	if s.OverflowFixRetries != nil && *s.OverflowFixRetries < 0 {
		errs = append(errs, fmt.Errorf("dialog.overflow_fix_retries must not be negative, got %d", *s.OverflowFixRetries))
	}
	if s.OverflowFixIntervalMS != nil && *s.OverflowFixIntervalMS < 0 {
		errs = append(errs, fmt.Errorf("dialog.overflow_fix_interval_ms must not be negative, got %d", *s.OverflowFixIntervalMS))
	}
	if s.MaxWidth < 0 || s.MaxBodyHeight < 0 {
		errs = append(errs, errors.New("dialog.max_width and dialog.max_body_height must not be negative"))
	}
	if s.MaxWidth > 0 && s.MaxWidth < ui.MinContentWidth+ui.DialogPaddingAllowance {
		errs = append(errs, fmt.Errorf("dialog.max_width must be at least %d", ui.MinContentWidth+ui.DialogPaddingAllowance))
	}
	if s.MarkdownStyle != "" && s.MarkdownStyle != styles.AutoStyle {
		if _, ok := styles.DefaultStyles[s.MarkdownStyle]; !ok {
			errs = append(errs, fmt.Errorf("dialog.markdown_style %q is not a glamour standard style", s.MarkdownStyle))
		}
	}

	if len(c.Dialogs) == 0 {
		errs = append(errs, errors.New("no dialogs defined"))
	}

	keys := map[string]string{}
	for _, name := range c.Names() {
		d := c.Dialogs[name]
		if d.Title == "" && d.Body == "" {
			errs = append(errs, fmt.Errorf("dialog %q: title or body is required", name))
		}
		switch {
		case d.Key == "":
			errs = append(errs, fmt.Errorf("dialog %q: key is required", name))
		case slices.Contains(ReservedKeys, d.Key):
			errs = append(errs, fmt.Errorf("dialog %q: key %q is reserved", name, d.Key))
		case keys[d.Key] != "":
			errs = append(errs, fmt.Errorf("dialog %q: key %q already used by %q", name, d.Key, keys[d.Key]))
		default:
			keys[d.Key] = name
		}
		errs = append(errs, validateButtons(name, d.Buttons)...)
	}

	return errors.Join(errs...)
}

func validateButtons(name string, buttons []ButtonSpec) []error {
	var errs []error
	ids := map[string]bool{}
	for i, b := range buttons {
		if b.Label == "" {
			errs = append(errs, fmt.Errorf("dialog %q: button %d has no label", name, i))
		}
		id := b.ID
		if id == "" {
			id = b.Action
		}
		if id != "" {
			if ids[id] {
				errs = append(errs, fmt.Errorf("dialog %q: duplicate button id %q", name, id))
			}
			ids[id] = true
		}
		if id == ui.TargetScrim || id == ui.TargetSurface {
			errs = append(errs, fmt.Errorf("dialog %q: button id %q is reserved", name, id))
		}
		if b.URL != "" {
			u, err := url.Parse(b.URL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				errs = append(errs, fmt.Errorf("dialog %q: button %q has invalid url %q", name, b.Label, b.URL))
			}
			if b.Action == "" {
				errs = append(errs, fmt.Errorf("dialog %q: button %q has a url but no action", name, b.Label))
			}
		}
	}
	return errs
}
