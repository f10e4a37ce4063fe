package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Specialist{}, &Evaluation{}, &BlogPost{}, &Testimonial{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListSpecialists returns the full roster in insertion order.
func (d *Database) ListSpecialists() ([]Specialist, error) {
	if d == nil {
		return nil, errors.New("database is nil")
	}
	var roster []Specialist
	if err := d.gorm.Order("id ASC").Find(&roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

// GetSpecialist fetches a single roster entry by id.
func (d *Database) GetSpecialist(id uint) (*Specialist, error) {
	var specialist Specialist
	if err := d.gorm.First(&specialist, id).Error; err != nil {
		return nil, err
	}
	return &specialist, nil
}

// SaveSpecialist creates or updates a roster entry.
func (d *Database) SaveSpecialist(specialist *Specialist) error {
	if specialist == nil {
		return errors.New("specialist is nil")
	}
	specialist.Name = strings.TrimSpace(specialist.Name)
	specialist.City = strings.TrimSpace(specialist.City)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Save(specialist).Error
}

// DeleteSpecialist removes a roster entry.
func (d *Database) DeleteSpecialist(id uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Delete(&Specialist{}, id).Error
}

// ReplaceSpecialists swaps the entire roster, used by the seed binary.
func (d *Database) ReplaceSpecialists(roster []Specialist) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Specialist{}).Error; err != nil {
			return err
		}
		if len(roster) == 0 {
			return nil
		}
		const batchSize = 100
		return tx.CreateInBatches(roster, batchSize).Error
	})
}

// SaveEvaluation creates an evaluation row.
func (d *Database) SaveEvaluation(e *Evaluation) error {
	if e == nil {
		return errors.New("evaluation is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Create(e).Error
}

// GetEvaluation fetches a persisted evaluation by id.
func (d *Database) GetEvaluation(id string) (*Evaluation, error) {
	var evaluation Evaluation
	if err := d.gorm.First(&evaluation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// ListEvaluations returns a page of evaluations, newest first, with the
// total row count for pagination.
func (d *Database) ListEvaluations(limit, offset int) ([]Evaluation, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	var total int64
	if err := d.gorm.Model(&Evaluation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []Evaluation
	if err := d.gorm.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListPosts returns blog posts, optionally only published ones.
func (d *Database) ListPosts(publishedOnly bool) ([]BlogPost, error) {
	query := d.gorm.Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var posts []BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a blog post by id.
func (d *Database) GetPost(id uint) (*BlogPost, error) {
	var post BlogPost
	if err := d.gorm.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SavePost creates or updates a blog post.
func (d *Database) SavePost(post *BlogPost) error {
	if post == nil {
		return errors.New("post is nil")
	}
	post.Slug = slugify(firstNonEmpty(post.Slug, post.Title))
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Save(post).Error
}

// DeletePost removes a blog post.
func (d *Database) DeletePost(id uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Delete(&BlogPost{}, id).Error
}

// ListTestimonials returns testimonials, optionally only approved ones.
func (d *Database) ListTestimonials(approvedOnly bool) ([]Testimonial, error) {
	query := d.gorm.Order("created_at DESC")
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	var items []Testimonial
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetTestimonial fetches a testimonial by id.
func (d *Database) GetTestimonial(id uint) (*Testimonial, error) {
	var item Testimonial
	if err := d.gorm.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveTestimonial creates or updates a testimonial.
func (d *Database) SaveTestimonial(item *Testimonial) error {
	if item == nil {
		return errors.New("testimonial is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Save(item).Error
}

// DeleteTestimonial removes a testimonial.
func (d *Database) DeleteTestimonial(id uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Delete(&Testimonial{}, id).Error
}

var diacriticFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

func slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = diacriticFolder.Replace(value)
	var b strings.Builder
	b.Grow(len(value))
	lastDash := false
	for _, r := range value {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
