package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dao.InitTables(db))

	return db
}

func TestReactionRepositoryBulkCountForZeroFills(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewReactionRepository(dao.NewReactionDAO(db))
	ctx := context.Background()

	_, _, err := repo.Toggle(ctx, 1, domain.ReactionLike, domain.Target{Type: domain.TargetVehicle, ID: 10})
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, 2, domain.ReactionLike, domain.Target{Type: domain.TargetVehicle, ID: 10})
	require.NoError(t, err)

	counts, err := repo.BulkCountFor(ctx, domain.ReactionLike, domain.TargetVehicle, []uint{10, 20})
	require.NoError(t, err)
	require.Len(t, counts, 2)

	assert.Equal(t, int64(2), counts[10])

	// Unreacted targets are present with an explicit zero.
	count, ok := counts[20]
	require.True(t, ok)
	assert.Equal(t, int64(0), count)
}

func TestReactionRepositoryFavoritesOfOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	rows := []dao.Reaction{
		{UserID: 1, Kind: "favorite", TargetType: "vehicle", TargetID: 10, CreatedAt: base},
		{UserID: 1, Kind: "favorite", TargetType: "post", TargetID: 20, CreatedAt: base.Add(time.Minute)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	repo := repository.NewReactionRepository(dao.NewReactionDAO(db))
	favorites, err := repo.FavoritesOf(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	assert.Equal(t, domain.TargetPost, favorites[0].Target.Type)
	assert.Equal(t, uint(20), favorites[0].Target.ID)
	assert.Equal(t, domain.TargetVehicle, favorites[1].Target.Type)
	assert.Equal(t, uint(10), favorites[1].Target.ID)
}
