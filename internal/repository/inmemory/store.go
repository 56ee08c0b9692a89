package inmemory

import (
	"maps"
	"sort"
	"sync"
	"time"

	dogdomain "dogwalk-app-go/internal/domain/dog"
	groupdomain "dogwalk-app-go/internal/domain/group"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	matchdomain "dogwalk-app-go/internal/domain/match"
	userdomain "dogwalk-app-go/internal/domain/user"
	walkdomain "dogwalk-app-go/internal/domain/walk"
)

// Store holds every table of the memory storage driver behind one mutex.
// A transaction keeps the mutex for its whole callback and restores a
// snapshot when the callback fails.
type Store struct {
	mu  sync.Mutex
	seq uint64
	now func() time.Time

	tables
}

type tables struct {
	profiles     map[string]row[userdomain.Profile]
	dogs         map[string]row[dogdomain.Dog]
	groups       map[string]row[groupdomain.Group]
	memberships  map[string]row[groupdomain.Membership]
	walks        map[string]row[walkdomain.Walk]
	keywords     map[string]row[keyworddomain.Keyword]
	keywordables map[uint]row[keyworddomain.Keywordable]
	matches      map[string]row[matchdomain.UserMatch]
}

// row remembers insertion order so listings are stable.
type row[T any] struct {
	seq   uint64
	value T
}

func NewStore() *Store {
	return &Store{
		now: func() time.Time { return time.Now().UTC() },
		tables: tables{
			profiles:     make(map[string]row[userdomain.Profile]),
			dogs:         make(map[string]row[dogdomain.Dog]),
			groups:       make(map[string]row[groupdomain.Group]),
			memberships:  make(map[string]row[groupdomain.Membership]),
			walks:        make(map[string]row[walkdomain.Walk]),
			keywords:     make(map[string]row[keyworddomain.Keyword]),
			keywordables: make(map[uint]row[keyworddomain.Keywordable]),
			matches:      make(map[string]row[matchdomain.UserMatch]),
		},
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{store: s} }
func (s *Store) Dogs() *DogRepository         { return &DogRepository{store: s} }
func (s *Store) Groups() *GroupRepository     { return &GroupRepository{store: s} }
func (s *Store) Walks() *WalkRepository       { return &WalkRepository{store: s} }
func (s *Store) Keywords() *KeywordRepository { return &KeywordRepository{store: s} }
func (s *Store) Matches() *MatchRepository    { return &MatchRepository{store: s} }
func (s *Store) Stats() *StatsRepository      { return &StatsRepository{store: s} }

// acquire locks the store unless the caller already runs inside a transaction.
func (s *Store) acquire(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// transaction joins an outer transaction when inTx is set.
func (s *Store) transaction(inTx bool, fn func() error) error {
	if inTx {
		return fn()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.tables.clone()
	snapshotSeq := s.seq
	if err := fn(); err != nil {
		s.tables = snapshot
		s.seq = snapshotSeq
		return err
	}
	return nil
}

func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

func (t tables) clone() tables {
	return tables{
		profiles:     maps.Clone(t.profiles),
		dogs:         maps.Clone(t.dogs),
		groups:       maps.Clone(t.groups),
		memberships:  maps.Clone(t.memberships),
		walks:        maps.Clone(t.walks),
		keywords:     maps.Clone(t.keywords),
		keywordables: maps.Clone(t.keywordables),
		matches:      maps.Clone(t.matches),
	}
}

// sortedValues returns the rows accepted by keep in insertion order.
func sortedValues[K comparable, T any](items map[K]row[T], keep func(T) bool) []T {
	rows := make([]row[T], 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item.value) {
			rows = append(rows, item)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	values := make([]T, 0, len(rows))
	for _, item := range rows {
		values = append(values, item.value)
	}
	return values
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
