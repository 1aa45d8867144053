package playlist

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// fakeRepository is an in-memory playlist store that mirrors the dense
// position maintenance of the real one.
type fakeRepository struct {
	playlists map[uuid.UUID]*Playlist
	items     map[uuid.UUID][]Item
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		playlists: make(map[uuid.UUID]*Playlist),
		items:     make(map[uuid.UUID][]Item),
	}
}

func (r *fakeRepository) Create(ctx context.Context, playlist *Playlist) error {
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	clone := *playlist
	r.playlists[playlist.ID] = &clone
	return nil
}

func (r *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*Playlist, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("playlist")
	}
	clone := *playlist
	return &clone, nil
}

func (r *fakeRepository) Save(ctx context.Context, playlist *Playlist) error {
	clone := *playlist
	r.playlists[playlist.ID] = &clone
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.playlists, id)
	delete(r.items, id)
	return nil
}

func (r *fakeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, includePrivate bool) ([]Playlist, error) {
	var out []Playlist
	for _, playlist := range r.playlists {
		if playlist.OwnerID != ownerID {
			continue
		}
		if !includePrivate && playlist.Visibility == "private" {
			continue
		}
		out = append(out, *playlist)
	}
	return out, nil
}

func (r *fakeRepository) ListItems(ctx context.Context, playlistID uuid.UUID) ([]Item, error) {
	items := append([]Item(nil), r.items[playlistID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (r *fakeRepository) AddItem(ctx context.Context, playlistID, videoID uuid.UUID, maxItems int) (*Item, error) {
	items := r.items[playlistID]
	for _, item := range items {
		if item.VideoID == videoID {
			return nil, apperrors.NewValidationError("videoId", "video is already in the playlist")
		}
	}
	if len(items) >= maxItems {
		return nil, apperrors.NewValidationError("videoId", "playlist is full")
	}
	item := Item{ID: uuid.New(), PlaylistID: playlistID, VideoID: videoID, Position: len(items)}
	r.items[playlistID] = append(items, item)
	return &item, nil
}

func (r *fakeRepository) RemoveItem(ctx context.Context, playlistID, videoID uuid.UUID) error {
	items := r.items[playlistID]
	removed := -1
	for i, item := range items {
		if item.VideoID == videoID {
			removed = i
			break
		}
	}
	if removed == -1 {
		return apperrors.NewNotFoundError("playlist item")
	}
	position := items[removed].Position
	items = append(items[:removed], items[removed+1:]...)
	for i := range items {
		if items[i].Position > position {
			items[i].Position--
		}
	}
	r.items[playlistID] = items
	return nil
}

func (r *fakeRepository) MoveItem(ctx context.Context, playlistID, videoID uuid.UUID, position int) error {
	items := r.items[playlistID]
	if position < 0 || position >= len(items) {
		return apperrors.NewValidationError("position", "position is out of range")
	}
	moved := -1
	for i, item := range items {
		if item.VideoID == videoID {
			moved = i
			break
		}
	}
	if moved == -1 {
		return apperrors.NewNotFoundError("playlist item")
	}
	old := items[moved].Position
	for i := range items {
		switch {
		case items[i].VideoID == videoID:
			items[i].Position = position
		case old < position && items[i].Position > old && items[i].Position <= position:
			items[i].Position--
		case old > position && items[i].Position >= position && items[i].Position < old:
			items[i].Position++
		}
	}
	return nil
}

// fakeVideos answers existence checks from a fixed set of video ids.
type fakeVideos struct {
	known map[uuid.UUID]bool
}

func (v *fakeVideos) Exists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	return v.known[videoID], nil
}

type playlistFixture struct {
	service *Service
	repo    *fakeRepository
	videos  *fakeVideos
	ownerID uuid.UUID
}

func newPlaylistFixture() *playlistFixture {
	f := &playlistFixture{
		repo:    newFakeRepository(),
		videos:  &fakeVideos{known: make(map[uuid.UUID]bool)},
		ownerID: uuid.New(),
	}
	f.service = NewService(f.repo, f.videos, &Config{MaxTitleLength: 100, MaxItems: 5}, logger.NewNopLogger())
	return f
}

func (f *playlistFixture) newVideo() uuid.UUID {
	id := uuid.New()
	f.videos.known[id] = true
	return id
}

func (f *playlistFixture) createPlaylist(t *testing.T, visibility string) *Playlist {
	t.Helper()
	playlist, err := f.service.Create(context.Background(), f.ownerID, &CreateRequest{
		Title:      "Watch later",
		Visibility: visibility,
	})
	require.NoError(t, err)
	return playlist
}

func TestCreatePlaylistDefaultsToPrivate(t *testing.T) {
	f := newPlaylistFixture()

	playlist, err := f.service.Create(context.Background(), f.ownerID, &CreateRequest{Title: "Mix"})
	require.NoError(t, err)
	assert.Equal(t, "private", playlist.Visibility)
}

func TestCreatePlaylistValidation(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.ownerID, &CreateRequest{Title: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.service.Create(ctx, f.ownerID, &CreateRequest{Title: "Mix", Visibility: "unlisted"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetHidesPrivateFromOthers(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "private")

	_, err := f.service.Get(ctx, playlist.ID, nil)
	assert.True(t, apperrors.IsNotFound(err))

	stranger := uuid.New()
	_, err = f.service.Get(ctx, playlist.ID, &stranger)
	assert.True(t, apperrors.IsNotFound(err))

	got, err := f.service.Get(ctx, playlist.ID, &f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, got.ID)
}

func TestAddVideoAppendsAtEnd(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "public")

	first, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, f.newVideo())
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, f.newVideo())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
}

func TestAddVideoRejectsDuplicateAndUnknown(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "public")

	videoID := f.newVideo()
	_, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, videoID)
	require.NoError(t, err)

	_, err = f.service.AddVideo(ctx, playlist.ID, f.ownerID, videoID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.service.AddVideo(ctx, playlist.ID, f.ownerID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddVideoRespectsCapacity(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "public")

	for i := 0; i < 5; i++ {
		_, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, f.newVideo())
		require.NoError(t, err)
	}
	_, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, f.newVideo())
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRemoveVideoCompactsPositions(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "public")

	videos := make([]uuid.UUID, 3)
	for i := range videos {
		videos[i] = f.newVideo()
		_, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, videos[i])
		require.NoError(t, err)
	}

	require.NoError(t, f.service.RemoveVideo(ctx, playlist.ID, f.ownerID, videos[0]))

	items, err := f.repo.ListItems(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, videos[1], items[0].VideoID)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, videos[2], items[1].VideoID)
	assert.Equal(t, 1, items[1].Position)
}

func TestMoveVideoSlidesRange(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "public")

	videos := make([]uuid.UUID, 4)
	for i := range videos {
		videos[i] = f.newVideo()
		_, err := f.service.AddVideo(ctx, playlist.ID, f.ownerID, videos[i])
		require.NoError(t, err)
	}

	require.NoError(t, f.service.MoveVideo(ctx, playlist.ID, f.ownerID, videos[3], 0))

	items, err := f.repo.ListItems(ctx, playlist.ID)
	require.NoError(t, err)
	want := []uuid.UUID{videos[3], videos[0], videos[1], videos[2]}
	for i, item := range items {
		assert.Equal(t, want[i], item.VideoID, "position %d", i)
		assert.Equal(t, i, item.Position)
	}

	err = f.service.MoveVideo(ctx, playlist.ID, f.ownerID, videos[3], 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestPlaylistOwnershipGates(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	playlist := f.createPlaylist(t, "public")
	stranger := uuid.New()

	_, err := f.service.Update(ctx, playlist.ID, stranger, &UpdateRequest{})
	assert.True(t, apperrors.IsAuthorization(err))

	err = f.service.Delete(ctx, playlist.ID, stranger)
	assert.True(t, apperrors.IsAuthorization(err))

	_, err = f.service.AddVideo(ctx, playlist.ID, stranger, f.newVideo())
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestListByOwnerHidesPrivate(t *testing.T) {
	f := newPlaylistFixture()
	ctx := context.Background()
	f.createPlaylist(t, "private")
	f.createPlaylist(t, "public")

	mine, err := f.service.ListByOwner(ctx, f.ownerID, &f.ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := f.service.ListByOwner(ctx, f.ownerID, nil)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
