package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/hyperreal/pkg/logger"
)

const repositoryIDQuery = `query GetRepositoryId($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    id
  }
}`

const createDiscussionMutation = `mutation CreateDiscussion($repositoryId: ID!, $categoryId: ID!, $title: String!, $body: String!) {
  createDiscussion(input: {repositoryId: $repositoryId, categoryId: $categoryId, title: $title, body: $body}) {
    discussion {
      id
      number
      url
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// Discussion identifies a created discussion.
type Discussion struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// graphql posts query and decodes the data member into out.
func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	req, err := c.gh.NewRequest(http.MethodPost, c.graphqlURL, graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrGraphQL, err)
	}
	var resp graphQLResponse
	if _, err := c.gh.Do(ctx, req, &resp); err != nil {
		return fmt.Errorf("%w: %w", ErrGraphQL, err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %w", ErrGraphQL, err)
	}
	return nil
}

// RepositoryID returns the GraphQL node id of the repository. The id is
// fetched once and cached; failures are not cached.
func (c *Client) RepositoryID(ctx context.Context) (string, error) {
	c.repoIDMu.Lock()
	defer c.repoIDMu.Unlock()
	if c.repoID != "" {
		return c.repoID, nil
	}

	start := time.Now()
	var data struct {
		Repository *struct {
			ID string `json:"id"`
		} `json:"repository"`
	}
	err := c.graphql(ctx, repositoryIDQuery, map[string]any{"owner": c.owner, "name": c.repo}, &data)
	if err == nil && (data.Repository == nil || data.Repository.ID == "") {
		err = fmt.Errorf("%w: repository %s not found", ErrGraphQL, c.Repository())
	}
	c.record("repository_id", err, start)
	if err != nil {
		return "", err
	}
	c.repoID = data.Repository.ID
	return c.repoID, nil
}

// CreateDiscussion opens a discussion in the configured category.
func (c *Client) CreateDiscussion(ctx context.Context, title, body string) (Discussion, error) {
	repoID, err := c.RepositoryID(ctx)
	if err != nil {
		return Discussion{}, err
	}

	start := time.Now()
	var data struct {
		CreateDiscussion struct {
			Discussion Discussion `json:"discussion"`
		} `json:"createDiscussion"`
	}
	err = c.graphql(ctx, createDiscussionMutation, map[string]any{
		"repositoryId": repoID,
		"categoryId":   c.categoryID,
		"title":        title,
		"body":         body,
	}, &data)
	c.record("create_discussion", err, start)
	if err != nil {
		return Discussion{}, fmt.Errorf("create discussion %q: %w", title, err)
	}
	d := data.CreateDiscussion.Discussion
	c.logger.Info(ctx, "discussion created",
		logger.Int("number", d.Number),
		logger.String("url", d.URL),
	)
	return d, nil
}
