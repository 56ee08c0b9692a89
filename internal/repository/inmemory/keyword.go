package inmemory

import (
	"context"
	"fmt"
	"sort"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

type KeywordRepository struct {
	store *Store
	inTx  bool
}

func (r *KeywordRepository) Transaction(ctx context.Context, fn func(keyworddomain.Repository) error) error {
	return r.store.transaction(r.inTx, func() error {
		return fn(&KeywordRepository{store: r.store, inTx: true})
	})
}

func (r *KeywordRepository) ListKeywords(_ context.Context, category *keyworddomain.Category) ([]keyworddomain.Keyword, error) {
	defer r.store.acquire(r.inTx)()

	keywords := sortedValues(r.store.keywords, func(k keyworddomain.Keyword) bool {
		return category == nil || k.Category == *category
	})
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Category != keywords[j].Category {
			return keywords[i].Category < keywords[j].Category
		}
		return keywords[i].Name < keywords[j].Name
	})
	return keywords, nil
}

func (r *KeywordRepository) GetKeywordsByNames(_ context.Context, names []string) ([]keyworddomain.Keyword, error) {
	defer r.store.acquire(r.inTx)()

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	return sortedValues(r.store.keywords, func(k keyworddomain.Keyword) bool {
		_, ok := wanted[k.Name]
		return ok
	}), nil
}

// UpsertKeywords matches on name; an existing entry keeps its ID and takes the new category.
func (r *KeywordRepository) UpsertKeywords(_ context.Context, keywords []keyworddomain.Keyword) error {
	defer r.store.acquire(r.inTx)()

	byName := make(map[string]string, len(r.store.keywords))
	for id, item := range r.store.keywords {
		byName[item.value.Name] = id
	}

	for _, keyword := range keywords {
		if id, ok := byName[keyword.Name]; ok {
			item := r.store.keywords[id]
			item.value.Category = keyword.Category
			r.store.keywords[id] = item
			continue
		}
		keyword.CreatedAt = r.store.now()
		r.store.keywords[keyword.ID] = row[keyworddomain.Keyword]{seq: r.store.next(), value: keyword}
		byName[keyword.Name] = keyword.ID
	}
	return nil
}

func (r *KeywordRepository) ListByRef(_ context.Context, ref keyworddomain.Ref) ([]keyworddomain.Keyword, error) {
	defer r.store.acquire(r.inTx)()

	links := sortedValues(r.store.keywordables, func(link keyworddomain.Keywordable) bool {
		return link.KeywordableType == ref.Kind && link.KeywordableID == ref.ID
	})
	keywords := make([]keyworddomain.Keyword, 0, len(links))
	for _, link := range links {
		if item, ok := r.store.keywords[link.KeywordID]; ok {
			keywords = append(keywords, item.value)
		}
	}
	return keywords, nil
}

func (r *KeywordRepository) HasAssociation(_ context.Context, ref keyworddomain.Ref, keywordID string) (bool, error) {
	defer r.store.acquire(r.inTx)()
	return r.linked(ref, keywordID), nil
}

func (r *KeywordRepository) linked(ref keyworddomain.Ref, keywordID string) bool {
	for _, item := range r.store.keywordables {
		link := item.value
		if link.KeywordableType == ref.Kind && link.KeywordableID == ref.ID && link.KeywordID == keywordID {
			return true
		}
	}
	return false
}

func (r *KeywordRepository) AddAssociations(_ context.Context, links []keyworddomain.Keywordable) error {
	defer r.store.acquire(r.inTx)()

	for _, link := range links {
		if _, ok := r.store.keywords[link.KeywordID]; !ok {
			return fmt.Errorf("%w: unknown keyword %s", keyworddomain.ErrInvalidKeyword, link.KeywordID)
		}
		ref := keyworddomain.Ref{Kind: link.KeywordableType, ID: link.KeywordableID}
		if r.linked(ref, link.KeywordID) {
			continue
		}
		seq := r.store.next()
		link.ID = uint(seq)
		link.CreatedAt = r.store.now()
		link.Keyword = keyworddomain.Keyword{}
		r.store.keywordables[link.ID] = row[keyworddomain.Keywordable]{seq: seq, value: link}
	}
	return nil
}

func (r *KeywordRepository) DeleteAssociation(_ context.Context, ref keyworddomain.Ref, keywordID string) error {
	defer r.store.acquire(r.inTx)()

	for id, item := range r.store.keywordables {
		link := item.value
		if link.KeywordableType == ref.Kind && link.KeywordableID == ref.ID && link.KeywordID == keywordID {
			delete(r.store.keywordables, id)
		}
	}
	return nil
}

func (r *KeywordRepository) DeleteAssociations(_ context.Context, ref keyworddomain.Ref) error {
	defer r.store.acquire(r.inTx)()

	for id, item := range r.store.keywordables {
		if item.value.KeywordableType == ref.Kind && item.value.KeywordableID == ref.ID {
			delete(r.store.keywordables, id)
		}
	}
	return nil
}
