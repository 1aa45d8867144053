package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/streamnest/streamnest/backend/internal/errors"
	"github.com/streamnest/streamnest/backend/internal/logger"
	"github.com/streamnest/streamnest/backend/internal/storage"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*Video

	failCreate bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{videos: make(map[uuid.UUID]*Video)}
}

func (r *fakeRepository) Create(ctx context.Context, v *Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return fmt.Errorf("create failed")
	}
	clone := *v
	r.videos[v.ID] = &clone
	return nil
}

func (r *fakeRepository) CreateFeatured(ctx context.Context, v *Video) error {
	r.mu.Lock()
	for _, existing := range r.videos {
		if existing.UploaderID == v.UploaderID {
			existing.IsFeatured = false
		}
	}
	r.mu.Unlock()
	return r.Create(ctx, v)
}

func (r *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("video")
	}
	clone := *v
	return &clone, nil
}

func (r *fakeRepository) Save(ctx context.Context, v *Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *v
	r.videos[v.ID] = &clone
	return nil
}

func (r *fakeRepository) SaveFeatured(ctx context.Context, v *Video) error {
	r.mu.Lock()
	for id, existing := range r.videos {
		if existing.UploaderID == v.UploaderID && id != v.ID {
			existing.IsFeatured = false
		}
	}
	r.mu.Unlock()
	return r.Save(ctx, v)
}

func (r *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.videos, id)
	return nil
}

func (r *fakeRepository) List(ctx context.Context, opts ListOptions) ([]Video, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Video
	for _, v := range r.videos {
		if !opts.IncludeNonPublic && (v.Visibility != VisibilityPublic || v.Hidden || v.ProcessingStatus != StatusReady) {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepository) ListByUploader(ctx context.Context, uploaderID uuid.UUID, includeNonPublic bool) ([]Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Video
	for _, v := range r.videos {
		if v.UploaderID != uploaderID {
			continue
		}
		if !includeNonPublic && (v.Visibility != VisibilityPublic || v.Hidden) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status ProcessingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return apperrors.NewNotFoundError("video")
	}
	v.ProcessingStatus = status
	return nil
}

func (r *fakeRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return apperrors.NewNotFoundError("video")
	}
	v.Views++
	return nil
}

func (r *fakeRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return apperrors.NewNotFoundError("video")
	}
	v.Hidden = hidden
	return nil
}

func (r *fakeRepository) status(id uuid.UUID) ProcessingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[id].ProcessingStatus
}

// fakeStore is an in-memory blob store.
type fakeStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string][]byte)}
}

func (s *fakeStore) Save(ctx context.Context, reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[filename] = data
	return "/fake/" + filename, nil
}

func (s *fakeStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[filename]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) ReadRange(ctx context.Context, filename string, start, length int64) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[filename]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data[start : start+length])), nil
}

func (s *fakeStore) Stat(ctx context.Context, filename string) (storage.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[filename]
	if !ok {
		return storage.FileInfo{}, storage.ErrNotFound
	}
	return storage.FileInfo{Size: int64(len(data)), ModTime: time.Now()}, nil
}

func (s *fakeStore) Delete(ctx context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, filename)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// fakeProber returns a fixed duration or error.
type fakeProber struct {
	seconds float64
	err     error
}

func (p *fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return p.seconds, p.err
}

// fakeCache implements the Cache surface in memory.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	marked map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), marked: make(map[string]bool)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.marked[key] {
		return false, nil
	}
	c.marked[key] = true
	return true, nil
}

func testConfig() *Config {
	return &Config{
		MaxFileSize:     10 << 20,
		MaxTitleLength:  100,
		MaxDescLength:   5000,
		StreamMimeType:  "video/mp4",
		StreamBasePath:  "/api/v1/videos/stream",
		DefaultCategory: "Entertainment",
		ProcessingDelay: 20 * time.Millisecond,
		ViewDedupWindow: time.Hour,
		TrendingTTL:     time.Minute,
	}
}

type serviceFixture struct {
	service   *Service
	repo      *fakeRepository
	store     *fakeStore
	thumbs    *fakeStore
	prober    *fakeProber
	cache     *fakeCache
	scheduler *StatusScheduler
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:      newFakeRepository(),
		store:     newFakeStore(),
		thumbs:    newFakeStore(),
		prober:    &fakeProber{seconds: 83},
		cache:     newFakeCache(),
		scheduler: NewStatusScheduler(),
	}
	f.service = NewService(f.repo, f.store, f.thumbs, f.prober,
		f.scheduler, f.cache, testConfig(), logger.NewNopLogger())
	return f
}

// makeFileHeader builds a real multipart.FileHeader carrying data.
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func uploadInput(t *testing.T, uploader uuid.UUID) *UploadInput {
	return &UploadInput{
		UploaderID: uploader,
		Title:      "My first video",
		Visibility: "public",
		Video:      makeFileHeader(t, "clip.mp4", "video/mp4", []byte("fake video bytes")),
	}
}

func TestUploadStatusLifecycle(t *testing.T) {
	f := newServiceFixture()

	v, err := f.service.Upload(context.Background(), uploadInput(t, uuid.New()))
	require.NoError(t, err)

	// The record moves to processing as soon as the upload returns.
	assert.Equal(t, StatusProcessing, v.ProcessingStatus)
	assert.Equal(t, StatusProcessing, f.repo.status(v.ID))
	assert.Equal(t, 100, v.UploadProgress)
	assert.Equal(t, "1:23", v.Duration)
	assert.Equal(t, 1, f.store.count())

	// After the simulated processing delay it flips to ready.
	assert.Eventually(t, func() bool {
		return f.repo.status(v.ID) == StatusReady
	}, time.Second, 5*time.Millisecond)
}

func TestUploadRejectsMissingTitle(t *testing.T) {
	f := newServiceFixture()

	input := uploadInput(t, uuid.New())
	input.Title = "   "

	_, err := f.service.Upload(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	// Validation happens before any blob is written.
	assert.Equal(t, 0, f.store.count())
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	f := newServiceFixture()

	input := uploadInput(t, uuid.New())
	input.Video.Size = testConfig().MaxFileSize + 1

	_, err := f.service.Upload(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsPayloadTooLarge(err))
}

func TestUploadCleansUpBlobOnRecordFailure(t *testing.T) {
	f := newServiceFixture()
	f.repo.failCreate = true

	_, err := f.service.Upload(context.Background(), uploadInput(t, uuid.New()))
	require.Error(t, err)
	assert.Equal(t, 0, f.store.count(), "orphaned blob left after failed create")
}

func TestUploadProbeFailureFallsBackToZeroDuration(t *testing.T) {
	f := newServiceFixture()
	f.prober.err = fmt.Errorf("ffprobe not found")

	v, err := f.service.Upload(context.Background(), uploadInput(t, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, "0:00", v.Duration)
}

func TestUploadFeaturedClearsOtherFeatured(t *testing.T) {
	f := newServiceFixture()
	uploader := uuid.New()

	first := uploadInput(t, uploader)
	first.IsFeatured = true
	v1, err := f.service.Upload(context.Background(), first)
	require.NoError(t, err)

	second := uploadInput(t, uploader)
	second.IsFeatured = true
	v2, err := f.service.Upload(context.Background(), second)
	require.NoError(t, err)

	stored1, err := f.repo.FindByID(context.Background(), v1.ID)
	require.NoError(t, err)
	stored2, err := f.repo.FindByID(context.Background(), v2.ID)
	require.NoError(t, err)

	assert.False(t, stored1.IsFeatured, "older featured video should lose the flag")
	assert.True(t, stored2.IsFeatured)
}

func TestToggleReactionLifecycle(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	user := uuid.New()

	v, err := f.service.Upload(ctx, uploadInput(t, uuid.New()))
	require.NoError(t, err)

	// Like.
	v, err = f.service.ToggleReaction(ctx, v.ID, user, ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Likes)
	assert.True(t, v.LikedByUser(user))

	// Like again: removed.
	v, err = f.service.ToggleReaction(ctx, v.ID, user, ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Likes)
	assert.False(t, v.LikedByUser(user))

	// Like, then dislike: switches sides.
	_, err = f.service.ToggleReaction(ctx, v.ID, user, ReactionLike)
	require.NoError(t, err)
	v, err = f.service.ToggleReaction(ctx, v.ID, user, ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Likes)
	assert.Equal(t, int64(1), v.Dislikes)
	assert.False(t, v.LikedByUser(user))
	assert.True(t, v.DislikedByUser(user))
}

func TestToggleReactionRejectsUnknownType(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	v, err := f.service.Upload(ctx, uploadInput(t, uuid.New()))
	require.NoError(t, err)

	_, err = f.service.ToggleReaction(ctx, v.ID, uuid.New(), ReactionType("meh"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeleteRemovesBlobAndRecord(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	uploader := uuid.New()

	v, err := f.service.Upload(ctx, uploadInput(t, uploader))
	require.NoError(t, err)
	require.Equal(t, 1, f.store.count())

	require.NoError(t, f.service.Delete(ctx, v.ID, uploader, false))
	assert.Equal(t, 0, f.store.count())

	_, err = f.service.Get(ctx, v.ID, &uploader, false)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	v, err := f.service.Upload(ctx, uploadInput(t, uuid.New()))
	require.NoError(t, err)

	err = f.service.Delete(ctx, v.ID, uuid.New(), false)
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorization(err))
	assert.Equal(t, 1, f.store.count())
}

func TestGetHidesPrivateVideosFromOthers(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	owner := uuid.New()

	input := uploadInput(t, owner)
	input.Visibility = "private"
	v, err := f.service.Upload(ctx, input)
	require.NoError(t, err)

	// Owner sees it.
	_, err = f.service.Get(ctx, v.ID, &owner, false)
	assert.NoError(t, err)

	// A stranger gets not-found, not forbidden.
	stranger := uuid.New()
	_, err = f.service.Get(ctx, v.ID, &stranger, false)
	assert.True(t, apperrors.IsNotFound(err))

	// Admin sees it.
	_, err = f.service.Get(ctx, v.ID, &stranger, true)
	assert.NoError(t, err)
}

func TestRecordViewDeduplicates(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	v, err := f.service.Upload(ctx, uploadInput(t, uuid.New()))
	require.NoError(t, err)

	require.NoError(t, f.service.RecordView(ctx, v.ID, "viewer-a"))
	require.NoError(t, f.service.RecordView(ctx, v.ID, "viewer-a"))
	require.NoError(t, f.service.RecordView(ctx, v.ID, "viewer-b"))

	stored, err := f.repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Views)
}
