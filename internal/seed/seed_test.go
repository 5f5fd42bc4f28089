package seed

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cafes/internal/model"
	"cafes/internal/storage/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const sample = `
cafes:
  - name: Science Gallery London
    map_url: https://g.page/scigallerylon
    img_url: https://atlondonbridge.com/wp-content/uploads/2019/10/Science-Gallery-London.jpg
    location: London Bridge
    seats: 50+
    has_toilet: true
    has_wifi: false
    has_sockets: true
    can_take_calls: true
    coffee_price: "£2.40"
  - name: Social - Copeland Road
    map_url: https://g.page/CopelandSocial
    img_url: https://images.squarespace-cdn.com/social.jpg
    location: Peckham
    seats: 20-30
    has_toilet: true
    has_wifi: true
    has_sockets: false
    can_take_calls: true
`

func newRepository(t *testing.T) *repository.CafeRepository {
	t.Helper()

	sqldb, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().Model((*model.Cafe)(nil)).Exec(context.Background())
	require.NoError(t, err)

	return repository.NewCafeRepository(db, zap.NewNop())
}

func TestParse(t *testing.T) {
	cafes, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, cafes, 2)

	assert.Equal(t, "Science Gallery London", cafes[0].Name)
	assert.Equal(t, "London Bridge", cafes[0].Location)
	assert.True(t, cafes[0].CanTakeCalls)
	assert.False(t, cafes[0].HasWifi)
	assert.Equal(t, "£2.40", cafes[0].Price())
	assert.Nil(t, cafes[1].CoffeePrice)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("cafes: [::"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cafes, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, cafes, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	cafes, err := Parse([]byte(sample))
	require.NoError(t, err)

	result, err := Apply(ctx, repo, cafes, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2}, result)

	result, err = Apply(ctx, repo, cafes, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, result, "seeding twice is a no-op")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestApply_InvalidCafe(t *testing.T) {
	repo := newRepository(t)

	_, err := Apply(context.Background(), repo, []model.Cafe{{Name: "No Location"}}, zap.NewNop())

	var verrs model.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
