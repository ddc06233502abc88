package backends

import (
	"github.com/sinclairtarget/git-contrib/internal/cache"
)

type NoopBackend struct{}

func (b NoopBackend) Name() string {
	return "noop"
}

func (b NoopBackend) Load() ([]cache.Entry, error) {
	return []cache.Entry{}, nil
}

func (b NoopBackend) Add(entries []cache.Entry) error {
	return nil
}

func (b NoopBackend) Clear() error {
	return nil
}
