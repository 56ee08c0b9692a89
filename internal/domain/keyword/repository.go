package keyword

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListKeywords(ctx context.Context, category *Category) ([]Keyword, error)
	GetKeywordsByNames(ctx context.Context, names []string) ([]Keyword, error)
	UpsertKeywords(ctx context.Context, keywords []Keyword) error
	ListByRef(ctx context.Context, ref Ref) ([]Keyword, error)
	HasAssociation(ctx context.Context, ref Ref, keywordID string) (bool, error)
	AddAssociations(ctx context.Context, links []Keywordable) error
	DeleteAssociation(ctx context.Context, ref Ref, keywordID string) error
	DeleteAssociations(ctx context.Context, ref Ref) error
}
