package clipserver

import (
	"sync"
	"time"

	"github.com/anatolykoptev/go_clipverb/internal/engine/clips"
)

// idleTTL is how long a client's session survives without a call.
const idleTTL = time.Hour

// clientState is what the server remembers for one MCP client.
type clientState struct {
	session *clips.Session

	mu       sync.Mutex
	last     *clips.Result
	lastCfg  clips.GenerationConfig
	lastUsed time.Time
}

// remember stores the latest (possibly partial) result for follow-up tools.
func (c *clientState) remember(cfg clips.GenerationConfig, res clips.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := res
	c.last = &r
	c.lastCfg = cfg
}

// lastResult returns the latest result, if any.
func (c *clientState) lastResult() (clips.Result, clips.GenerationConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return clips.Result{}, clips.GenerationConfig{}, false
	}
	return *c.last, c.lastCfg, true
}

// registry hands out one generation session per MCP session id.
type registry struct {
	resolver *clips.Resolver
	client   *clips.Client
	timeout  time.Duration

	mu      sync.Mutex
	clients map[string]*clientState
}

func newRegistry(resolver *clips.Resolver, client *clips.Client, timeout time.Duration) *registry {
	return &registry{
		resolver: resolver,
		client:   client,
		timeout:  timeout,
		clients:  make(map[string]*clientState),
	}
}

// get returns the state for id, creating it on first use. Idle clients
// with no generation in flight are dropped on the way.
func (r *registry) get(id string) *clientState {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for k, c := range r.clients {
		if k == id {
			continue
		}
		if now.Sub(c.touched()) > idleTTL && !isActive(c.session.State()) {
			delete(r.clients, k)
		}
	}

	c, ok := r.clients[id]
	if !ok {
		c = &clientState{session: clips.NewSession(r.resolver, r.client, r.timeout)}
		r.clients[id] = c
	}
	c.touch(now)
	return c
}

// peek returns the state for id without creating it.
func (r *registry) peek(id string) (*clientState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	return c, ok
}

func (c *clientState) touch(t time.Time) {
	c.mu.Lock()
	c.lastUsed = t
	c.mu.Unlock()
}

func (c *clientState) touched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

func isActive(s clips.State) bool {
	return s == clips.StateResolving || s == clips.StateStreaming
}
