package github

import "errors"

var (
	// ErrMissingToken is returned by New when no token is configured.
	ErrMissingToken = errors.New("github token is required")
	// ErrGraphQL is returned when a GraphQL response carries errors.
	ErrGraphQL = errors.New("github graphql")
	// ErrRender is returned when an artifact body cannot be rendered.
	ErrRender = errors.New("render github body")
	// ErrTacticalPR is returned when the tactical pull request flow fails.
	ErrTacticalPR = errors.New("tactical pull request")
)
