package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	floating "github.com/grindlemire/go-floating"
)

var (
	// ErrInvalid is returned for scenarios that fail validation.
	ErrInvalid = errors.New("invalid scenario")
	// ErrUnknownElement is returned when a step or surface names an element
	// id that does not exist.
	ErrUnknownElement = errors.New("unknown element")
	// ErrUnknownSurface is returned when a step names a surface that does
	// not exist.
	ErrUnknownSurface = errors.New("unknown surface")
	// ErrUnknownStep is returned for steps the runner does not understand.
	ErrUnknownStep = errors.New("unknown step")
)

// Scenario is the top-level YAML document.
type Scenario struct {
	Name string `yaml:"name"`
	// InertSupport defaults to true.
	InertSupport *bool         `yaml:"inert_support"`
	Elements     []ElementSpec `yaml:"elements"`
	Surfaces     []SurfaceSpec `yaml:"surfaces"`
	Steps        []string      `yaml:"steps"`
}

// ElementSpec describes one element and its children.
type ElementSpec struct {
	Tag      string            `yaml:"tag"`
	ID       string            `yaml:"id"`
	TabIndex *int              `yaml:"tabindex"`
	Role     string            `yaml:"role"`
	Text     string            `yaml:"text"`
	Attrs    map[string]string `yaml:"attrs"`
	Children []ElementSpec     `yaml:"children"`
}

// SurfaceSpec describes a floating surface and its focus manager options.
type SurfaceSpec struct {
	Name      string `yaml:"name"`
	Reference string `yaml:"reference"`
	Floating  string `yaml:"floating"`
	Parent    string `yaml:"parent"`

	Modal                 *bool  `yaml:"modal"`
	Order                 string `yaml:"order"`
	InitialFocus          *int   `yaml:"initial_focus"`
	ReturnFocus           *bool  `yaml:"return_focus"`
	Guards                *bool  `yaml:"guards"`
	CloseOnFocusOut       *bool  `yaml:"close_on_focus_out"`
	VisuallyHiddenDismiss bool   `yaml:"visually_hidden_dismiss"`
	Portal                bool   `yaml:"portal"`
	Dismiss               bool   `yaml:"dismiss"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that ids are unique, surfaces reference existing elements
// and every order parses.
func (s *Scenario) Validate() error {
	ids := map[string]bool{}
	var walk func(specs []ElementSpec) error
	walk = func(specs []ElementSpec) error {
		for _, e := range specs {
			if e.Tag == "" {
				return fmt.Errorf("%w: element %q has no tag", ErrInvalid, e.ID)
			}
			if e.ID != "" {
				if ids[e.ID] {
					return fmt.Errorf("%w: duplicate element id %q", ErrInvalid, e.ID)
				}
				ids[e.ID] = true
			}
			if err := walk(e.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(s.Elements); err != nil {
		return err
	}

	surfaces := map[string]bool{}
	for _, sf := range s.Surfaces {
		if sf.Name == "" {
			return fmt.Errorf("%w: surface without a name", ErrInvalid)
		}
		if surfaces[sf.Name] {
			return fmt.Errorf("%w: duplicate surface %q", ErrInvalid, sf.Name)
		}
		if sf.Parent != "" && !surfaces[sf.Parent] {
			return fmt.Errorf("%w: surface %q: parent %q must be declared first", ErrInvalid, sf.Name, sf.Parent)
		}
		surfaces[sf.Name] = true
		for _, id := range []string{sf.Reference, sf.Floating} {
			if !ids[id] {
				return fmt.Errorf("surface %q: %w %q", sf.Name, ErrUnknownElement, id)
			}
		}
		if sf.Order != "" {
			if _, err := floating.ParseOrder(sf.Order); err != nil {
				return fmt.Errorf("%w: surface %q: %w", ErrInvalid, sf.Name, err)
			}
		}
	}

	for i, step := range s.Steps {
		if strings.TrimSpace(step) == "" {
			return fmt.Errorf("%w: step %d is empty", ErrInvalid, i+1)
		}
	}
	return nil
}

// options translates the surface spec into focus manager options.
func (sf SurfaceSpec) options() []floating.FocusManagerOption {
	var opts []floating.FocusManagerOption
	if sf.Modal != nil {
		opts = append(opts, floating.WithModal(*sf.Modal))
	}
	if sf.Order != "" {
		order, _ := floating.ParseOrder(sf.Order)
		opts = append(opts, floating.WithOrder(order))
	}
	if sf.InitialFocus != nil {
		opts = append(opts, floating.WithInitialFocusIndex(*sf.InitialFocus))
	}
	if sf.ReturnFocus != nil {
		opts = append(opts, floating.WithReturnFocus(*sf.ReturnFocus))
	}
	if sf.Guards != nil {
		opts = append(opts, floating.WithGuards(*sf.Guards))
	}
	if sf.CloseOnFocusOut != nil {
		opts = append(opts, floating.WithCloseOnFocusOut(*sf.CloseOnFocusOut))
	}
	if sf.VisuallyHiddenDismiss {
		opts = append(opts, floating.WithVisuallyHiddenDismiss(true))
	}
	return opts
}
