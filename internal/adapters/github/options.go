package github

import "github.com/okian/hyperreal/pkg/logger"

// Default repository and discussion category.
const (
	DefaultOwner              = "hiranotomo"
	DefaultRepo               = "soccer-hyperreal-experiment"
	DefaultDiscussionCategory = "DIC_kwDONXxK284ClaLa"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithRepository sets the owner and name of the target repository.
func WithRepository(owner, repo string) Option {
	return func(c *Client) {
		if owner != "" {
			c.owner = owner
		}
		if repo != "" {
			c.repo = repo
		}
	}
}

// WithBaseURL points the REST client at another API root, e.g. a
// GitHub Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithGraphQLURL sets the GraphQL endpoint. By default it is "graphql"
// relative to the REST base URL.
func WithGraphQLURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.graphqlURL = u
		}
	}
}

// WithDiscussionCategory sets the category new discussions are filed in.
func WithDiscussionCategory(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.categoryID = id
		}
	}
}

// WithTeamNames sets the display names used in titles and bodies.
func WithTeamNames(teamA, teamB string) Option {
	return func(c *Client) {
		if teamA != "" {
			c.teamA = teamA
		}
		if teamB != "" {
			c.teamB = teamB
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
