package git

import (
	"time"

	"github.com/okian/hyperreal/pkg/logger"
)

// Option applies a configuration option to the Committer.
type Option func(*Committer)

// WithAuthor sets the commit author.
func WithAuthor(name, email string) Option {
	return func(c *Committer) {
		if name != "" {
			c.authorName = name
		}
		if email != "" {
			c.authorEmail = email
		}
	}
}

// WithToken sets the token used for HTTPS pushes.
func WithToken(token string) Option {
	return func(c *Committer) {
		c.token = token
	}
}

// WithRemote sets the remote pushed to.
func WithRemote(name string) Option {
	return func(c *Committer) {
		if name != "" {
			c.remote = name
		}
	}
}

// WithClock overrides the commit time source.
func WithClock(now func() time.Time) Option {
	return func(c *Committer) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Committer) {
		if l != nil {
			c.logger = l
		}
	}
}
