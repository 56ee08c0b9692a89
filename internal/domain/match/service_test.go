package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchRepo struct {
	rows map[[2]string]*UserMatch
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{rows: make(map[[2]string]*UserMatch)}
}

func (r *fakeMatchRepo) UpsertMatch(ctx context.Context, match *UserMatch) error {
	key := [2]string{match.UserID, match.TargetUserID}
	if existing, ok := r.rows[key]; ok {
		existing.Action = match.Action
		return nil
	}
	stored := *match
	r.rows[key] = &stored
	return nil
}

func (r *fakeMatchRepo) GetMatch(ctx context.Context, userID, targetUserID string) (*UserMatch, error) {
	row, ok := r.rows[[2]string{userID, targetUserID}]
	if !ok {
		return nil, ErrMatchNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *fakeMatchRepo) ListMutual(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for key, row := range r.rows {
		if key[0] != userID || row.Action != ActionLike {
			continue
		}
		if back, ok := r.rows[[2]string{key[1], userID}]; ok && back.Action == ActionLike {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func TestRecordUpsertsSingleRow(t *testing.T) {
	repo := newFakeMatchRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Record(ctx, "a", "b", ActionLike)
	require.NoError(t, err)
	second, err := svc.Record(ctx, "a", "b", ActionPass)
	require.NoError(t, err)

	assert.Len(t, repo.rows, 1)
	assert.Equal(t, first.Match.ID, second.Match.ID)
	assert.Equal(t, ActionPass, second.Match.Action)
}

func TestRecordReportsMutual(t *testing.T) {
	svc := NewService(newFakeMatchRepo())
	ctx := context.Background()

	result, err := svc.Record(ctx, "a", "b", ActionLike)
	require.NoError(t, err)
	assert.False(t, result.Mutual)

	result, err = svc.Record(ctx, "b", "a", ActionLike)
	require.NoError(t, err)
	assert.True(t, result.Mutual)

	mutual, err := svc.ListMutual(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, mutual)

	result, err = svc.Record(ctx, "b", "a", ActionPass)
	require.NoError(t, err)
	assert.False(t, result.Mutual)
}

func TestRecordRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeMatchRepo())
	ctx := context.Background()

	_, err := svc.Record(ctx, "", "b", ActionLike)
	assert.ErrorIs(t, err, ErrActorRequired)
	_, err = svc.Record(ctx, "a", " ", ActionLike)
	assert.ErrorIs(t, err, ErrTargetMissing)
	_, err = svc.Record(ctx, "a", "a", ActionLike)
	assert.ErrorIs(t, err, ErrSelfMatch)
	_, err = svc.Record(ctx, "a", "b", Action("MAYBE"))
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"like", ActionLike, false},
		{" PASS ", ActionPass, false},
		{"dislike", ActionPass, false},
		{"superlike", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
