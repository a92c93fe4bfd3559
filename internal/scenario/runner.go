package scenario

import (
	"fmt"
	"sort"
	"strings"

	floating "github.com/grindlemire/go-floating"
	"github.com/grindlemire/go-floating/internal/debug"
)

// Entry is one replayed step.
type Entry struct {
	Step string
	// Active is the id (or tag) of the focused element after the step, or
	// "" when nothing has focus.
	Active string
	// Open lists the open surfaces after the step, sorted.
	Open []string
	// Expect is true for expect steps; Passed and Message describe the
	// outcome.
	Expect  bool
	Passed  bool
	Message string
}

// Report is the trace of a replayed scenario.
type Report struct {
	Name    string
	Entries []Entry
}

// Failures returns the number of failed expectations.
func (r *Report) Failures() int {
	n := 0
	for _, e := range r.Entries {
		if e.Expect && !e.Passed {
			n++
		}
	}
	return n
}

type surface struct {
	spec    SurfaceSpec
	node    *floating.Node
	manager *floating.FocusManager
	portal  *floating.Portal
	dismiss *floating.Dismiss
}

type runner struct {
	doc      *floating.Document
	tree     *floating.Tree
	surfaces map[string]*surface
	names    []string
}

// Run builds the scenario's document and replays its steps. Failed
// expectations are reported in the returned Report; malformed steps and
// unknown names abort the run with an error.
func Run(s *Scenario) (*Report, error) {
	r, err := build(s)
	if err != nil {
		return nil, err
	}
	defer r.teardown()

	report := &Report{Name: s.Name}
	for i, step := range s.Steps {
		entry, err := r.step(step)
		if err != nil {
			return report, fmt.Errorf("step %d %q: %w", i+1, step, err)
		}
		r.doc.Flush()
		entry.Step = step
		entry.Active = describe(r.doc.ActiveElement())
		entry.Open = r.openSurfaces()
		report.Entries = append(report.Entries, entry)
		debug.Log("scenario: step %d %q active=%s open=%v", i+1, step, entry.Active, entry.Open)
	}
	return report, nil
}

func build(s *Scenario) (*runner, error) {
	var docOpts []floating.DocumentOption
	if s.InertSupport != nil {
		docOpts = append(docOpts, floating.WithInertSupport(*s.InertSupport))
	}
	r := &runner{
		doc:      floating.NewDocument(docOpts...),
		tree:     floating.NewTree(),
		surfaces: map[string]*surface{},
	}
	for _, spec := range s.Elements {
		r.doc.Body().AddChild(r.element(spec))
	}

	for _, spec := range s.Surfaces {
		reference, float := r.doc.GetByID(spec.Reference), r.doc.GetByID(spec.Floating)
		if reference == nil || float == nil {
			return nil, fmt.Errorf("surface %q: %w", spec.Name, ErrUnknownElement)
		}
		nodeOpts := []floating.NodeOption{
			floating.WithNodeID(spec.Name),
			floating.WithElements(reference, float),
		}
		if spec.Parent != "" {
			parent, ok := r.surfaces[spec.Parent]
			if !ok {
				return nil, fmt.Errorf("surface %q: parent %q: %w", spec.Name, spec.Parent, ErrUnknownSurface)
			}
			nodeOpts = append(nodeOpts, floating.WithParent(parent.node))
		}
		sf := &surface{spec: spec, node: floating.NewNode(nodeOpts...)}
		if err := r.tree.Register(sf.node); err != nil {
			return nil, fmt.Errorf("surface %q: %w", spec.Name, err)
		}

		opts := spec.options()
		if spec.Portal {
			sf.portal = floating.NewPortal(r.doc, floating.WithPortalID(spec.Name+"-portal"))
			sf.portal.Node().AddChild(float)
			opts = append(opts, floating.WithPortal(sf.portal))
		}
		sf.manager = floating.NewFocusManager(r.doc, sf.node, opts...)
		sf.manager.Mount()
		if spec.Dismiss {
			sf.dismiss = floating.NewDismiss(r.doc, sf.node)
			sf.dismiss.Mount()
		}
		r.surfaces[spec.Name] = sf
		r.names = append(r.names, spec.Name)
	}
	return r, nil
}

func (r *runner) element(spec ElementSpec) *floating.Element {
	opts := []floating.Option{}
	if spec.ID != "" {
		opts = append(opts, floating.WithID(spec.ID))
	}
	if spec.TabIndex != nil {
		opts = append(opts, floating.WithTabIndex(*spec.TabIndex))
	}
	if spec.Role != "" {
		opts = append(opts, floating.WithRole(spec.Role))
	}
	if spec.Text != "" {
		opts = append(opts, floating.WithText(spec.Text))
	}
	for k, v := range spec.Attrs {
		opts = append(opts, floating.WithAttr(k, v))
	}
	el := r.doc.CreateElement(spec.Tag, opts...)
	for _, child := range spec.Children {
		el.AddChild(r.element(child))
	}
	return el
}

func (r *runner) teardown() {
	for i := len(r.names) - 1; i >= 0; i-- {
		sf := r.surfaces[r.names[i]]
		if sf.dismiss != nil {
			sf.dismiss.Unmount()
		}
		sf.manager.Unmount()
		r.tree.Unregister(sf.node.ID())
	}
}

func (r *runner) step(step string) (Entry, error) {
	fields := strings.Fields(step)
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "tab":
		r.doc.PressKey(floating.KeyTab, floating.ModNone)
	case "shift+tab":
		r.doc.PressKey(floating.KeyTab, floating.ModShift)
	case "escape":
		r.doc.PressKey(floating.KeyEscape, floating.ModNone)
	case "enter":
		r.doc.PressKey(floating.KeyEnter, floating.ModNone)
	case "click", "focus", "remove":
		el, err := r.lookup(args)
		if err != nil {
			return Entry{}, err
		}
		switch verb {
		case "click":
			r.doc.Click(el)
		case "focus":
			el.Focus()
		case "remove":
			el.Remove()
		}
	case "open", "close":
		sf, err := r.surface(args)
		if err != nil {
			return Entry{}, err
		}
		sf.node.RequestOpenChange(verb == "open", nil)
	case "append":
		if len(args) != 2 {
			return Entry{}, fmt.Errorf("%w: append takes a parent and an id", ErrUnknownStep)
		}
		parent, err := r.lookup(args[:1])
		if err != nil {
			return Entry{}, err
		}
		parent.AddChild(r.doc.CreateElement("button", floating.WithID(args[1])))
	case "expect":
		r.doc.Flush()
		return r.expect(args)
	default:
		return Entry{}, fmt.Errorf("%w %q", ErrUnknownStep, verb)
	}
	return Entry{}, nil
}

func (r *runner) expect(args []string) (Entry, error) {
	if len(args) != 2 {
		return Entry{}, fmt.Errorf("%w: expect takes a kind and a value", ErrUnknownStep)
	}
	kind, want := args[0], args[1]
	entry := Entry{Expect: true}
	switch kind {
	case "focus":
		got := describe(r.doc.ActiveElement())
		if want == "none" {
			want = ""
		}
		entry.Passed = got == want
		entry.Message = fmt.Sprintf("focus on %s, want %s", orNone(got), orNone(want))
	case "open", "closed":
		sf, err := r.surface(args[1:])
		if err != nil {
			return Entry{}, err
		}
		wantOpen := kind == "open"
		entry.Passed = sf.node.IsOpen() == wantOpen
		entry.Message = fmt.Sprintf("%s open=%v, want %v", want, sf.node.IsOpen(), wantOpen)
	default:
		return Entry{}, fmt.Errorf("%w: expect %q", ErrUnknownStep, kind)
	}
	return entry, nil
}

func (r *runner) lookup(args []string) (*floating.Element, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: expected one element id", ErrUnknownStep)
	}
	el := r.doc.GetByID(args[0])
	if el == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownElement, args[0])
	}
	return el, nil
}

func (r *runner) surface(args []string) (*surface, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: expected one surface name", ErrUnknownStep)
	}
	sf, ok := r.surfaces[args[0]]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSurface, args[0])
	}
	return sf, nil
}

func (r *runner) openSurfaces() []string {
	var out []string
	for name, sf := range r.surfaces {
		if sf.node.IsOpen() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func describe(el *floating.Element) string {
	if el == nil {
		return ""
	}
	if id := el.ID(); id != "" {
		return id
	}
	return el.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
