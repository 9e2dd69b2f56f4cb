package memory

import (
	"context"
	"strings"
	"sync"

	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

// Gateway is a permissive in-memory authorization gateway. Every actor may
// do everything and sees every branch until a test narrows them down with
// Deny, RestrictToBranches, or AllowHidden.
type Gateway struct {
	mu sync.RWMutex

	denied     map[string]map[string]struct{}
	scopes     map[string]ports.BranchScope
	viewHidden map[string]bool
}

func NewGateway() *Gateway {
	return &Gateway{
		denied:     make(map[string]map[string]struct{}),
		scopes:     make(map[string]ports.BranchScope),
		viewHidden: make(map[string]bool),
	}
}

// Deny forbids one action for one actor.
func (g *Gateway) Deny(actorID string, action string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	actions, exists := g.denied[actorID]
	if !exists {
		actions = make(map[string]struct{})
		g.denied[actorID] = actions
	}
	actions[action] = struct{}{}
}

// RestrictToBranches limits an actor's visibility to the given branch ids.
func (g *Gateway) RestrictToBranches(actorID string, branchIDs ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scopes[actorID] = ports.BranchScope{
		Restricted: true,
		BranchIDs:  append([]string(nil), branchIDs...),
	}
}

// AllowHidden grants or revokes the view-hidden capability for an actor.
// Actors without an explicit entry cannot see hidden states.
func (g *Gateway) AllowHidden(actorID string, allowed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewHidden[actorID] = allowed
}

func (g *Gateway) Authorize(_ context.Context, actorID string, action string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if strings.TrimSpace(actorID) == "" {
		return domainerrors.ErrForbidden
	}
	if actions, exists := g.denied[actorID]; exists {
		if _, denied := actions[action]; denied {
			return domainerrors.ErrForbidden
		}
	}
	return nil
}

func (g *Gateway) Scope(_ context.Context, actorID string) (ports.BranchScope, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if scope, exists := g.scopes[actorID]; exists {
		return ports.BranchScope{
			Restricted: scope.Restricted,
			BranchIDs:  append([]string(nil), scope.BranchIDs...),
		}, nil
	}
	return ports.BranchScope{}, nil
}

func (g *Gateway) CanViewHidden(_ context.Context, actorID string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.viewHidden[actorID], nil
}
