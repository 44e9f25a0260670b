package seed

import (
	"fmt"
	"testing"

	"photoshare/internal/database"
	"photoshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db, SeedOptions{})

	user, err := f.CreateUser()
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	assert.NotEmpty(t, user.LoginName)
	assert.NotEmpty(t, user.FirstName)

	// stored password is a bcrypt hash of the shared dev password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFactory_CreateUser_SkipBcrypt(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db, SeedOptions{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.Equal(t, "password123", user.Password)
}

func TestFactory_CreateUser_Overrides(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db, SeedOptions{SkipBcrypt: true})

	user, err := f.CreateUser(func(u *models.User) {
		u.LoginName = "ansel"
		u.FirstName = "Ansel"
		u.LastName = "Adams"
	})
	require.NoError(t, err)
	assert.Equal(t, "ansel", user.LoginName)
	assert.Equal(t, "Ansel", user.FirstName)
}

func TestFactory_CreateComment_LinksMentions(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db, SeedOptions{SkipBcrypt: true})

	author, err := f.CreateUser()
	require.NoError(t, err)
	mentioned, err := f.CreateUser()
	require.NoError(t, err)
	photo, err := f.CreatePhoto(author)
	require.NoError(t, err)

	comment, err := f.CreateComment(author, photo, []models.User{*mentioned})
	require.NoError(t, err)
	require.NotZero(t, comment.ID)

	assert.Contains(t, comment.Text, fmt.Sprintf("](%d)", mentioned.ID))

	var joinRows int64
	require.NoError(t, db.Table("comment_mentions").Where("comment_id = ?", comment.ID).Count(&joinRows).Error)
	assert.Equal(t, int64(1), joinRows)
}

func TestFactory_DryRun_WritesNothing(t *testing.T) {
	db := setupSeedTestDB(t)
	f := NewFactory(db, SeedOptions{DryRun: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	photo, err := f.CreatePhoto(user)
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)

	_, err = f.CreateComment(user, photo, nil)
	require.NoError(t, err)
	require.NoError(t, f.CreateLike(user, photo))

	for _, table := range []string{"users", "photos", "comments", "likes"} {
		var count int64
		require.NoError(t, db.Table(table).Count(&count).Error)
		assert.Zero(t, count, "table %s should stay empty in dry-run", table)
	}
}

func TestSeeder_SeedCommunityAndEngagement(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeederWithOptions(db, SeedOptions{SkipBcrypt: true})

	users, err := s.SeedCommunity(6)
	require.NoError(t, err)
	require.Len(t, users, 6)

	// the well-known accounts come first
	assert.Equal(t, "ansel", users[0].LoginName)
	assert.Equal(t, "dorothea", users[1].LoginName)
	assert.Equal(t, "test", users[2].LoginName)

	photos, err := s.SeedEngagement(users, 10)
	require.NoError(t, err)
	assert.Len(t, photos, 10)

	var photoCount int64
	require.NoError(t, db.Model(&models.Photo{}).Count(&photoCount).Error)
	assert.Equal(t, int64(10), photoCount)

	// every like references a distinct user per photo
	type likeRow struct {
		PhotoID uint
		UserID  uint
	}
	var likes []likeRow
	require.NoError(t, db.Model(&models.Like{}).Select("photo_id", "user_id").Find(&likes).Error)
	seen := make(map[likeRow]bool)
	for _, l := range likes {
		assert.False(t, seen[l], "duplicate like for photo %d by user %d", l.PhotoID, l.UserID)
		seen[l] = true
	}
}

func TestSeeder_SeedEngagement_NoUsers(t *testing.T) {
	db := setupSeedTestDB(t)
	s := NewSeeder(db)

	_, err := s.SeedEngagement(nil, 5)
	assert.Error(t, err)
}
