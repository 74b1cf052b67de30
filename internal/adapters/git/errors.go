package git

import "errors"

var (
	// ErrOpenRepository is returned when the working tree is not a git repository.
	ErrOpenRepository = errors.New("open repository")
	// ErrCommit is returned when staging or committing fails.
	ErrCommit = errors.New("git commit")
	// ErrPush is returned when pushing to the remote fails.
	ErrPush = errors.New("git push")
	// ErrCheckout is returned when switching or creating a branch fails.
	ErrCheckout = errors.New("git checkout")
)
