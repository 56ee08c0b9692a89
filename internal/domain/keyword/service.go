package keyword

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultCacheTTL = 5 * time.Minute

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

func (s *Service) ListKeywords(ctx context.Context, category string) ([]Keyword, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.repo.ListKeywords(ctx, nil)
	}
	c := Category(category)
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.ListKeywords(ctx, &c)
}

// GetKeywords returns the keywords tagged to ref in association order.
func (s *Service) GetKeywords(ctx context.Context, ref Ref) ([]Keyword, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByRef(ctx, ref)
}

func (s *Service) AddKeyword(ctx context.Context, ref Ref, keyword Keyword) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if keyword.ID == "" {
		return ErrInvalidKeyword
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.HasAssociation(ctx, ref, keyword.ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return tx.AddAssociations(ctx, []Keywordable{ref.link(keyword.ID)})
	})
}

func (s *Service) RemoveKeyword(ctx context.Context, ref Ref, keyword Keyword) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if keyword.ID == "" {
		return ErrInvalidKeyword
	}
	return s.repo.DeleteAssociation(ctx, ref, keyword.ID)
}

// SyncKeywords replaces the whole tag set of ref in a single transaction.
// Repeated keywords collapse to one association.
func (s *Service) SyncKeywords(ctx context.Context, ref Ref, keywords []Keyword) ([]Keyword, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(keywords))
	unique := make([]Keyword, 0, len(keywords))
	links := make([]Keywordable, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword.ID == "" {
			return nil, ErrInvalidKeyword
		}
		if _, ok := seen[keyword.ID]; ok {
			continue
		}
		seen[keyword.ID] = struct{}{}
		unique = append(unique, keyword)
		links = append(links, ref.link(keyword.ID))
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteAssociations(ctx, ref); err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.AddAssociations(ctx, links)
	})
	if err != nil {
		return nil, err
	}
	return unique, nil
}

// SyncKeywordNames resolves names against the vocabulary and syncs the
// result. Names without a matching keyword are skipped.
func (s *Service) SyncKeywordNames(ctx context.Context, ref Ref, names []string) ([]Keyword, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	resolved, err := s.resolveNames(ctx, names)
	if err != nil {
		return nil, err
	}
	return s.SyncKeywords(ctx, ref, resolved)
}

// DeleteAll drops every association of ref. Called when the entity goes away.
func (s *Service) DeleteAll(ctx context.Context, ref Ref) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	return s.repo.DeleteAssociations(ctx, ref)
}

// Seed upserts the vocabulary by name and returns how many entries were written.
func (s *Service) Seed(ctx context.Context, keywords []Keyword) (int, error) {
	prepared := make([]Keyword, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		keyword.Name = strings.TrimSpace(keyword.Name)
		if keyword.Name == "" {
			return 0, fmt.Errorf("%w: name is required", ErrInvalidKeyword)
		}
		if !keyword.Category.Valid() {
			return 0, fmt.Errorf("%w: %q for %q", ErrInvalidCategory, keyword.Category, keyword.Name)
		}
		if _, ok := seen[keyword.Name]; ok {
			continue
		}
		seen[keyword.Name] = struct{}{}
		if keyword.ID == "" {
			keyword.ID = uuid.NewString()
		}
		prepared = append(prepared, keyword)
	}

	if len(prepared) == 0 {
		return 0, nil
	}
	if err := s.repo.UpsertKeywords(ctx, prepared); err != nil {
		return 0, err
	}
	s.cache.Clear()
	return len(prepared), nil
}

func (s *Service) resolveNames(ctx context.Context, names []string) ([]Keyword, error) {
	byName := make(map[string]Keyword, len(names))
	ordered := make([]string, 0, len(names))
	var missing []string

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ordered = append(ordered, name)
		if _, ok := byName[name]; ok {
			continue
		}
		if cached, ok := s.cache.GetByName(name); ok {
			byName[name] = *cached
			continue
		}
		missing = append(missing, name)
		byName[name] = Keyword{}
	}

	if len(missing) > 0 {
		found, err := s.repo.GetKeywordsByNames(ctx, missing)
		if err != nil {
			return nil, err
		}
		s.cache.SetMany(found, s.cacheTTL)
		for _, keyword := range found {
			byName[keyword.Name] = keyword
		}
	}

	result := make([]Keyword, 0, len(ordered))
	for _, name := range ordered {
		keyword := byName[name]
		if keyword.ID == "" {
			continue
		}
		result = append(result, keyword)
	}
	return result, nil
}
