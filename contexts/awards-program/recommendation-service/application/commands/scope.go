package commands

import (
	"context"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
	"chancery/contexts/awards-program/recommendation-service/ports"
)

// guardScope rejects writes targeting a recommendation outside the actor's
// branch scope. Out-of-scope rows read as not-found on every query path, so a
// write attempt must not leak existence either.
func guardScope(ctx context.Context, gateway ports.AuthorizationGateway, actorID string, rec entities.Recommendation) error {
	scope, err := gateway.Scope(ctx, actorID)
	if err != nil {
		return err
	}
	if !scope.Covers(rec) {
		return domainerrors.ErrRecommendationNotFound
	}
	return nil
}
