package errors

import "errors"

var (
	ErrRecommendationNotFound     = errors.New("recommendation not found")
	ErrInvalidRecommendationInput = errors.New("invalid recommendation input")
	ErrUnknownState               = errors.New("unknown workflow state")
	ErrDuplicateState             = errors.New("state declared under more than one status")
	ErrEmptyTaxonomy              = errors.New("status taxonomy has no states")
	ErrForbidden                  = errors.New("actor is not authorized")
	ErrUpdateAborted              = errors.New("update could not be completed")
)
