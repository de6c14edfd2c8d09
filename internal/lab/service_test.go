package lab

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID int
	labs   map[string]*Lab // by nickname
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{labs: make(map[string]*Lab)}
}

func (f *fakeRepo) Create(ctx context.Context, l *Lab) error {
	if _, exists := f.labs[l.Nickname]; exists {
		return ErrNicknameTaken
	}
	f.nextID++
	l.ID = fmt.Sprintf("lab-%d", f.nextID)
	stored := *l
	f.labs[l.Nickname] = &stored
	return nil
}

func (f *fakeRepo) GetByNickname(ctx context.Context, nickname string) (*Lab, error) {
	l, ok := f.labs[nickname]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Lab, int, error) {
	var out []*Lab
	for _, l := range f.labs {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, l *Lab) error {
	if _, ok := f.labs[l.Nickname]; !ok {
		return ErrNotFound
	}
	stored := *l
	f.labs[l.Nickname] = &stored
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	for nickname, l := range f.labs {
		if l.ID == id {
			f.labs[nickname].IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

func TestCreateLab(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  CreateRequest{Nickname: "lab01", Name: "Chemistry Lab", Capacity: 24},
		},
		{
			name:    "empty nickname",
			req:     CreateRequest{Name: "Chemistry Lab", Capacity: 24},
			wantErr: ErrEmptyNickname,
		},
		{
			name:    "empty name",
			req:     CreateRequest{Nickname: "LAB02", Capacity: 24},
			wantErr: ErrEmptyName,
		},
		{
			name:    "zero capacity",
			req:     CreateRequest{Nickname: "LAB03", Name: "Physics Lab"},
			wantErr: ErrInvalidCapacity,
		},
		{
			name:    "duplicate nickname, case-insensitive",
			req:     CreateRequest{Nickname: "Lab01", Name: "Another Lab", Capacity: 10},
			wantErr: ErrNicknameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			// Nicknames are normalized to upper case.
			require.Equal(t, "LAB01", l.Nickname)
			require.True(t, l.IsActive)
		})
	}
}

func TestGetByNicknameNormalizes(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Nickname: "LAB01", Name: "Chemistry Lab", Capacity: 24})
	require.NoError(t, err)

	l, err := svc.GetByNickname(ctx, "  lab01 ")
	require.NoError(t, err)
	require.Equal(t, "LAB01", l.Nickname)

	_, err = svc.GetByNickname(ctx, "LAB99")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLab(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Nickname: "LAB01", Name: "Chemistry Lab", Capacity: 24})
	require.NoError(t, err)

	newName := "Organic Chemistry Lab"
	photoID := "file-123"
	l, err := svc.Update(ctx, "LAB01", UpdateRequest{Name: &newName, PhotoFileID: &photoID})
	require.NoError(t, err)
	require.Equal(t, newName, l.Name)
	require.Equal(t, &photoID, l.PhotoFileID)
	// Untouched fields survive.
	require.Equal(t, 24, l.Capacity)

	empty := ""
	_, err = svc.Update(ctx, "LAB01", UpdateRequest{Name: &empty})
	require.ErrorIs(t, err, ErrEmptyName)

	bad := -1
	_, err = svc.Update(ctx, "LAB01", UpdateRequest{Capacity: &bad})
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestDeleteLabDeactivates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Nickname: "LAB01", Name: "Chemistry Lab", Capacity: 24})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "LAB01"))
	l, err := svc.GetByNickname(ctx, "LAB01")
	require.NoError(t, err)
	require.False(t, l.IsActive)

	require.ErrorIs(t, svc.Delete(ctx, "LAB99"), ErrNotFound)
}
