package service

import (
	"context"

	"github.com/personal-blog-api/internal/repository"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type statsService struct {
	counters map[string]counter
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{
		counters: map[string]counter{
			"users":        repos.User,
			"articles":     repos.Article,
			"activities":   repos.Activity,
			"friend_links": repos.FriendLink,
			"messages":     repos.Message,
		},
	}
}

// Counts returns the row count of every counted table
func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(s.counters))
	for name, c := range s.counters {
		n, err := c.Count(ctx)
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}
