// Package registry manages process-backed capability providers: it
// launches them, discovers their tools, namespaces those tools into the
// shared catalog, dispatches calls, and releases each provider's
// process and protocol session on disconnect.
//
// A Registry is explicitly constructed and passed to its consumers;
// there is no package-level instance. Provider state is written only
// during connect/disconnect and read elsewhere, matching the single
// cooperative conversation flow.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jpl-au/llmsh/internal/tool"
)

// ErrServerNotConnected is returned when dispatching to an unknown or
// disconnected provider.
var ErrServerNotConnected = errors.New("server not connected")

// State is a provider's connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateFailed       State = "failed"
)

// provider is the registry's bookkeeping for one external provider.
// The process handle and protocol session are owned exclusively here
// and released on disconnect.
type provider struct {
	id      string
	spec    ServerSpec
	state   State
	reason  string // failure reason when state == StateFailed
	session session
	tools   []tool.Definition // raw (un-namespaced) names; empty until connected
}

// ConnectResult reports one provider's connection attempt.
type ConnectResult struct {
	ID    string
	Tools []string // raw tool names discovered
	Err   error
}

// ProviderInfo is a read-only snapshot of one provider for presentation.
type ProviderInfo struct {
	ID     string
	State  State
	Reason string
	Tools  []string // exposed (namespaced) tool names
}

// Registry tracks external capability providers.
type Registry struct {
	dial      dialer
	providers map[string]*provider
	order     []string          // connection order, for deterministic listings
	exposed   []tool.Definition // flattened namespaced tools of connected providers
}

// New creates an empty registry using the stdio MCP transport.
func New() *Registry {
	return newRegistry(dialStdio)
}

func newRegistry(d dialer) *Registry {
	return &Registry{
		dial:      d,
		providers: make(map[string]*provider),
	}
}

// Connect launches the provider process described by spec, performs the
// protocol handshake, and records its discovered tools. A single
// attempt is made; retry policy is the caller's concern. The returned
// error mirrors ConnectResult.Err for direct callers.
func (r *Registry) Connect(ctx context.Context, id string, spec ServerSpec) ConnectResult {
	res := ConnectResult{ID: id}

	if err := ValidateID(id); err != nil {
		res.Err = err
		return res
	}
	if p, ok := r.providers[id]; ok && p.state == StateConnected {
		res.Err = fmt.Errorf("provider %s already connected", id)
		return res
	}

	p := &provider{id: id, spec: spec, state: StateConnecting}
	if _, tracked := r.providers[id]; !tracked {
		r.order = append(r.order, id)
	}
	r.providers[id] = p

	sess, err := r.dial(spec)
	if err != nil {
		p.state, p.reason = StateFailed, err.Error()
		res.Err = fmt.Errorf("connect %s: %w", id, err)
		return res
	}

	if err := sess.initialize(ctx); err != nil {
		_ = sess.close()
		p.state, p.reason = StateFailed, err.Error()
		res.Err = fmt.Errorf("connect %s: %w", id, err)
		return res
	}

	tools, err := sess.listTools(ctx)
	if err != nil {
		_ = sess.close()
		p.state, p.reason = StateFailed, err.Error()
		res.Err = fmt.Errorf("connect %s: %w", id, err)
		return res
	}

	p.session = sess
	p.state = StateConnected
	p.tools = tools
	r.rebuildExposed()

	for _, t := range tools {
		res.Tools = append(res.Tools, t.Name)
	}
	return res
}

// ConnectAll connects every configured provider sequentially, in sorted
// id order, so failures attribute deterministically and startup order is
// stable. One result is produced per provider; afterwards the exposed
// tool list reflects exactly the connected providers.
func (r *Registry) ConnectAll(ctx context.Context, servers map[string]ServerSpec) []ConnectResult {
	ids := make([]string, 0, len(servers))
	for id := range servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]ConnectResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, r.Connect(ctx, id, servers[id]))
	}
	r.rebuildExposed()
	return results
}

// rebuildExposed flattens all connected providers' tools through the
// namespacing rule, in connection order.
func (r *Registry) rebuildExposed() {
	r.exposed = r.exposed[:0]
	for _, id := range r.order {
		p := r.providers[id]
		if p.state != StateConnected {
			continue
		}
		for _, t := range p.tools {
			r.exposed = append(r.exposed, tool.Definition{
				Name:        ExposedName(id, t.Name),
				Description: t.Description,
				Parameters:  t.Parameters,
			})
		}
	}
}

// ExposedTools returns the current namespaced tool definitions.
// Implements tool.ExternalSource.
func (r *Registry) ExposedTools() []tool.Definition {
	return append([]tool.Definition(nil), r.exposed...)
}

// ExecuteTool reverse-parses an exposed name and forwards the call to
// the owning provider's session. Implements tool.ExternalSource.
// Transport failures come back as errors for the catalog to convert
// into result text; nothing here panics past the boundary.
func (r *Registry) ExecuteTool(ctx context.Context, exposed string, args map[string]any) (string, error) {
	id, rawName, err := ParseExposedName(exposed)
	if err != nil {
		return "", err
	}

	p, ok := r.providers[id]
	if !ok || p.state != StateConnected {
		return "", fmt.Errorf("%w: %s", ErrServerNotConnected, id)
	}
	return p.session.callTool(ctx, rawName, args)
}

// Disconnect closes a provider's session and removes its bookkeeping.
// Disconnecting an absent provider returns an error, never panics;
// repeating a disconnect is equivalent to disconnecting an absent
// provider.
func (r *Registry) Disconnect(id string) error {
	p, ok := r.providers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrServerNotConnected, id)
	}

	if p.session != nil {
		_ = p.session.close()
	}
	delete(r.providers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.rebuildExposed()
	return nil
}

// DisconnectAll closes every tracked provider.
func (r *Registry) DisconnectAll() {
	for _, id := range append([]string(nil), r.order...) {
		_ = r.Disconnect(id)
	}
}

// List returns a read-only snapshot of tracked providers in connection
// order, for presentation.
func (r *Registry) List() []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(r.order))
	for _, id := range r.order {
		p := r.providers[id]
		info := ProviderInfo{ID: id, State: p.state, Reason: p.reason}
		if p.state == StateConnected {
			for _, t := range p.tools {
				info.Tools = append(info.Tools, ExposedName(id, t.Name))
			}
		}
		infos = append(infos, info)
	}
	return infos
}
