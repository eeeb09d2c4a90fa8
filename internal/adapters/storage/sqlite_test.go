package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewalden/drift/internal/domain"
)

func TestNewMemory(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NotNil(t, store)
}

func TestLibraryRepository_SaveAndFind(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Library()

	t.Run("save and find by id", func(t *testing.T) {
		item := domain.NewLibraryItem("Morning Calm", "Ana Reyes", "audio/morning-calm.mp3", 600)
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.Title, found.Title)
		assert.Equal(t, item.Guide, found.Guide)
		assert.Equal(t, 600, found.DurationSeconds)
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestLibraryRepository_FindAll(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Library()

	older := domain.NewLibraryItem("Deep Rest", "Miko Tanaka", "audio/deep-rest.mp3", 1200)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := domain.NewLibraryItem("Evening Wind Down", "Ana Reyes", "audio/wind-down.mp3", 900)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Evening Wind Down", items[0].Title, "newest first")
}

func TestLibraryRepository_Search(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Library()

	require.NoError(t, repo.Save(ctx, domain.NewLibraryItem("Morning Calm", "Ana Reyes", "", 600)))
	require.NoError(t, repo.Save(ctx, domain.NewLibraryItem("Body Scan", "Miko Tanaka", "", 1200)))

	t.Run("matches title", func(t *testing.T) {
		results, err := repo.Search(ctx, "morning")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Morning Calm", results[0].Title)
	})

	t.Run("matches guide", func(t *testing.T) {
		results, err := repo.Search(ctx, "tanaka")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Body Scan", results[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := repo.Search(ctx, "zzzz")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestLibraryRepository_Delete(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Library()

	item := domain.NewLibraryItem("To Delete", "", "", 300)
	require.NoError(t, repo.Save(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, item.ID), domain.ErrItemNotFound)
}

func TestFeedbackRepository(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Feedback()

	entry := &domain.CommittedFeedbackEntry{
		ID:               "entry-1",
		SessionID:        "session-1",
		Label:            domain.FeedbackGood,
		TimestampSeconds: 45,
		Date:             time.Now(),
	}
	require.NoError(t, repo.Save(ctx, entry, "user-1", "meditation"))

	t.Run("find by session", func(t *testing.T) {
		entries, err := repo.FindBySession(ctx, "session-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.FeedbackGood, entries[0].Label)
		assert.Equal(t, 45, entries[0].TimestampSeconds)
	})

	t.Run("find recent", func(t *testing.T) {
		entries, err := repo.FindRecent(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("count by label", func(t *testing.T) {
		second := &domain.CommittedFeedbackEntry{
			ID:        "entry-2",
			SessionID: "session-1",
			Label:     domain.FeedbackGood,
			Date:      time.Now(),
		}
		require.NoError(t, repo.Save(ctx, second, "user-1", "meditation"))

		counts, err := repo.CountByLabel(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, counts[domain.FeedbackGood])
	})
}

func TestRecordRepository(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	repo := store.Records()

	record := &domain.SessionRecord{
		ID:        "record-1",
		UserID:    "user-1",
		SessionID: "session-1",
		Minutes:   7.5,
		Module:    "meditation",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.SaveRecord(ctx, record))

	rating := &domain.RatingRecord{
		ID:        "rating-1",
		UserID:    "user-1",
		SessionID: "session-1",
		Rating:    8,
		Module:    "meditation",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.SaveRating(ctx, rating))

	t.Run("find recent records", func(t *testing.T) {
		records, err := repo.FindRecentRecords(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.InDelta(t, 7.5, records[0].Minutes, 0.001)
	})

	t.Run("stats aggregate", func(t *testing.T) {
		stats, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.SessionsCompleted)
		assert.InDelta(t, 7.5, stats.TotalMinutes, 0.001)
		assert.InDelta(t, 8.0, stats.MeanRating, 0.001)
	})
}

func TestRecordRepository_EmptyStats(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	stats, err := store.Records().GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.SessionsCompleted)
	assert.Zero(t, stats.TotalMinutes)
	assert.Zero(t, stats.MeanRating)
}

func TestGateway(t *testing.T) {
	store, err := NewMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	gw := NewGateway(store)

	require.NoError(t, gw.SaveCompletedSession(ctx, "user-1", "session-1", 10.0, "meditation"))
	require.NoError(t, gw.SaveRating(ctx, "user-1", "session-1", 9, "meditation"))

	id, err := gw.SaveFeedbackEntry(ctx, "user-1", "session-1", "great", 120, "meditation")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := store.Feedback().FindBySession(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.FeedbackGreat, entries[0].Label)
	assert.Equal(t, 120, entries[0].TimestampSeconds)

	stats, err := store.Records().GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SessionsCompleted)
	assert.InDelta(t, 9.0, stats.MeanRating, 0.001)
}
