// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"photoshare/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions controls how the factory generates and persists data.
type SeedOptions struct {
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// SkipBcrypt stores the plaintext password; much faster for large seeds.
	SkipBcrypt bool
	// MaxDays bounds how far back generated timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
	// keeps generated photo file names unique within a run
	fileSeq int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	user := &models.User{
		LoginName:   strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, gofakeit.Number(100, 999))),
		FirstName:   first,
		LastName:    last,
		Location:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Description: gofakeit.Sentence(10),
		Occupation:  gofakeit.JobTitle(),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (%s %s)", user.LoginName, user.FirstName, user.LastName)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePhoto constructs and persists a sample `models.Photo` for the given
// user. The record points at a synthetic file name; no blob is written.
func (f *Factory) CreatePhoto(user *models.User, overrides ...func(*models.Photo)) (*models.Photo, error) {
	f.fileSeq++
	photo := &models.Photo{
		UserID:   user.ID,
		FileName: fmt.Sprintf("U%d%s-%d.jpg", time.Now().UnixMilli(), gofakeit.Word(), f.fileSeq),
		DateTime: f.spreadTimestamp(),
	}

	for _, override := range overrides {
		override(photo)
	}

	if f.opts.DryRun {
		f.nextID++
		photo.ID = f.nextID
		log.Printf("[dry-run] CreatePhoto: user=%d file=%s", photo.UserID, photo.FileName)
		return photo, nil
	}

	if err := f.db.Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided photo authored by the provided user. Mentioned users are embedded
// in the text using the @[Name](id) markup and linked through the join table.
func (f *Factory) CreateComment(user *models.User, photo *models.Photo, mentioned []models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	text := gofakeit.Sentence(8)
	for _, m := range mentioned {
		text = fmt.Sprintf("@[%s %s](%d) %s", m.FirstName, m.LastName, m.ID, text)
	}

	comment := &models.Comment{
		UserID:   user.ID,
		PhotoID:  photo.ID,
		Text:     text,
		DateTime: f.spreadTimestamp(),
		Mentions: mentioned,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		log.Printf("[dry-run] CreateComment: user=%d photo=%d mentions=%d", comment.UserID, comment.PhotoID, len(mentioned))
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `photo`.
func (f *Factory) CreateLike(user *models.User, photo *models.Photo) error {
	like := &models.Like{
		UserID:  user.ID,
		PhotoID: photo.ID,
	}
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLike: user=%d photo=%d", user.ID, photo.ID)
		return nil
	}
	return f.db.Create(like).Error
}

// spreadTimestamp returns a timestamp scattered over the configured window
// so seeded data does not all land on the same instant.
func (f *Factory) spreadTimestamp() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	// #nosec G404: acceptable for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
