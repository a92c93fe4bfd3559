package floating

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/grindlemire/go-floating/internal/debug"
)

//go:generate mockgen -package=floating -destination=mock_geometry_test.go github.com/grindlemire/go-floating GeometryEngine

// Default placement and strategy.
const (
	DefaultPlacement = "bottom"
	DefaultStrategy  = "absolute"
)

// Middleware is an opaque geometry middleware handed to the engine as is.
type Middleware struct {
	Name    string
	Options any
}

// PositionConfig is what the geometry engine is asked to compute.
type PositionConfig struct {
	Placement  string
	Strategy   string
	Middleware []Middleware
}

// PositionResult is the engine's answer.
type PositionResult struct {
	X              float64
	Y              float64
	Placement      string
	Strategy       string
	MiddlewareData map[string]any
}

// GeometryEngine computes where a floating element goes relative to its
// reference. Implementations may block; they are called off the document
// loop.
type GeometryEngine interface {
	ComputePosition(ctx context.Context, reference, floating *Element, cfg PositionConfig) (PositionResult, error)
}

// Position keeps a node's floating element positioned. Each change of the
// reference or floating element starts a new version; results computed for
// an older version are discarded.
type Position struct {
	doc    *Document
	node   *Node
	engine GeometryEngine
	cfg    PositionConfig

	transform bool
	dpr       float64

	group singleflight.Group
	scope *Scope

	mu         sync.Mutex
	version    uint64
	result     PositionResult
	positioned bool
	err        error
}

// PositionOption configures a Position.
type PositionOption func(*Position)

// WithPlacement sets the requested placement (default "bottom").
func WithPlacement(placement string) PositionOption {
	return func(p *Position) {
		if placement != "" {
			p.cfg.Placement = placement
		}
	}
}

// WithStrategy sets the CSS positioning strategy (default "absolute").
func WithStrategy(strategy string) PositionOption {
	return func(p *Position) {
		if strategy != "" {
			p.cfg.Strategy = strategy
		}
	}
}

// WithMiddleware sets the middleware passed to the engine.
func WithMiddleware(mw ...Middleware) PositionOption {
	return func(p *Position) {
		p.cfg.Middleware = append([]Middleware(nil), mw...)
	}
}

// WithTransform renders FloatingStyles as a translate transform.
func WithTransform(enabled bool) PositionOption {
	return func(p *Position) {
		p.transform = enabled
	}
}

// WithDevicePixelRatio sets the ratio coordinates are rounded to (default 1).
func WithDevicePixelRatio(dpr float64) PositionOption {
	return func(p *Position) {
		if dpr > 0 {
			p.dpr = dpr
		}
	}
}

// NewPosition creates a Position for node backed by engine.
func NewPosition(doc *Document, node *Node, engine GeometryEngine, opts ...PositionOption) *Position {
	if doc == nil || node == nil || engine == nil {
		panic("floating: NewPosition requires a document, a node and an engine")
	}
	p := &Position{
		doc:    doc,
		node:   node,
		engine: engine,
		cfg:    PositionConfig{Placement: DefaultPlacement, Strategy: DefaultStrategy},
		dpr:    1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mount recomputes the position whenever the reference or floating element
// changes. A change clears the previous result until the new one arrives.
// Mounting twice is a no-op.
func (p *Position) Mount(ctx context.Context) {
	if p.scope != nil && !p.scope.Disposed() {
		return
	}
	p.scope = NewScope()
	p.scope.Effect(func(run *Scope) {
		p.mu.Lock()
		p.version++
		p.result = PositionResult{}
		p.positioned = false
		p.mu.Unlock()
		p.Update(ctx)
	}, p.node.Reference, p.node.Floating)
}

// Unmount stops tracking. Results still in flight are discarded.
func (p *Position) Unmount() {
	if p.scope == nil {
		return
	}
	p.scope.Dispose()
	p.mu.Lock()
	p.version++
	p.mu.Unlock()
}

// Update asks the engine for a fresh position. Concurrent requests for the
// same version share one engine call. The returned channel is closed once
// the answer has been applied or discarded on the document loop; it is
// closed immediately when either element is missing.
func (p *Position) Update(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	reference, floating := p.node.Reference.Get(), p.node.Floating.Get()
	if reference == nil || floating == nil {
		close(done)
		return done
	}
	p.mu.Lock()
	version := p.version
	cfg := p.cfg
	p.mu.Unlock()

	go func() {
		v, err, shared := p.group.Do(strconv.FormatUint(version, 10), func() (any, error) {
			return p.engine.ComputePosition(ctx, reference, floating, cfg)
		})
		if shared {
			debug.Log("Position.Update: shared engine call for version %d", version)
		}
		p.doc.Loop().Post(func() {
			defer close(done)
			res, _ := v.(PositionResult)
			p.apply(version, res, err)
		})
	}()
	return done
}

func (p *Position) apply(version uint64, res PositionResult, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if version != p.version {
		debug.Log("Position: discarding stale result for version %d (current %d)", version, p.version)
		return
	}
	if err != nil {
		debug.Log("Position: compute failed: %v", err)
		p.err = fmt.Errorf("compute position: %w", err)
		return
	}
	res.X = p.round(res.X)
	res.Y = p.round(res.Y)
	p.result = res
	p.positioned = true
	p.err = nil
}

func (p *Position) round(v float64) float64 {
	return math.Round(v*p.dpr) / p.dpr
}

// IsPositioned reports whether a result has been applied for the current
// elements.
func (p *Position) IsPositioned() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positioned
}

// Result returns the last applied result.
func (p *Position) Result() PositionResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Err returns the error of the latest failed computation, or nil after a
// success.
func (p *Position) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// FloatingStyles returns the style properties that place the floating
// element.
func (p *Position) FloatingStyles() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	styles := map[string]string{
		"position": p.cfg.Strategy,
		"left":     "0px",
		"top":      "0px",
	}
	if p.node.Floating.Get() == nil {
		return styles
	}
	x, y := formatPx(p.result.X), formatPx(p.result.Y)
	if p.transform {
		styles["transform"] = fmt.Sprintf("translate(%s, %s)", x, y)
		if p.dpr >= 1.5 {
			styles["will-change"] = "transform"
		}
		return styles
	}
	styles["left"], styles["top"] = x, y
	return styles
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
