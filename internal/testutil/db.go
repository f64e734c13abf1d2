// Package testutil holds the in-memory database and fixtures shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/socialdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Uint64

// NewTestDB opens a private in-memory SQLite database with the full schema.
// The pool is pinned to one connection so the memory database survives between queries.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// UniqueEmail returns an email address not used by any other fixture in the process
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, seq.Add(1))
}

// CreateUser inserts a user with a throwaway password hash
func CreateUser(t *testing.T, db *gorm.DB, prefix string) *models.User {
	t.Helper()
	user := &models.User{
		Email:          UniqueEmail(prefix),
		HashedPassword: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefix",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// GroupOptions tweaks CreateGroup
type GroupOptions struct {
	Type              string
	AllowMemberPosts  bool
	AllowMemberEvents bool
}

// CreateGroup inserts a group with admin as its first member and admin
func CreateGroup(t *testing.T, db *gorm.DB, admin *models.User, opts GroupOptions) *models.Group {
	t.Helper()
	if opts.Type == "" {
		opts.Type = models.GroupPublic
	}
	group := &models.Group{
		Name:              fmt.Sprintf("group-%d", seq.Add(1)),
		GroupType:         opts.Type,
		AllowMemberPosts:  opts.AllowMemberPosts,
		AllowMemberEvents: opts.AllowMemberEvents,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}
	AddGroupMember(t, db, group, admin)
	if err := db.Create(&models.GroupAdmin{GroupID: group.ID, UserID: admin.ID}).Error; err != nil {
		t.Fatalf("Failed to add group admin: %v", err)
	}
	return group
}

// AddGroupMember inserts a membership row
func AddGroupMember(t *testing.T, db *gorm.DB, group *models.Group, user *models.User) {
	t.Helper()
	if err := db.Create(&models.GroupMember{GroupID: group.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("Failed to add group member: %v", err)
	}
}

// EventOptions tweaks CreateEvent
type EventOptions struct {
	Public   bool
	GroupID  *uint
	Shopping bool
	Start    time.Time
}

// CreateEvent inserts an event with organizer as its first participant and organizer
func CreateEvent(t *testing.T, db *gorm.DB, organizer *models.User, opts EventOptions) *models.Event {
	t.Helper()
	start := opts.Start
	if start.IsZero() {
		start = time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	}
	event := &models.Event{
		Name:                fmt.Sprintf("event-%d", seq.Add(1)),
		StartDate:           start,
		EndDate:             start.Add(3 * time.Hour),
		Location:            "Hall",
		IsPublic:            opts.Public,
		GroupID:             opts.GroupID,
		ShoppingListEnabled: opts.Shopping,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	AddParticipant(t, db, event, organizer)
	if err := db.Create(&models.EventOrganizer{EventID: event.ID, UserID: organizer.ID}).Error; err != nil {
		t.Fatalf("Failed to add organizer: %v", err)
	}
	return event
}

// AddParticipant inserts a participant row
func AddParticipant(t *testing.T, db *gorm.DB, event *models.Event, user *models.User) {
	t.Helper()
	if err := db.Create(&models.EventParticipant{EventID: event.ID, UserID: user.ID}).Error; err != nil {
		t.Fatalf("Failed to add participant: %v", err)
	}
}

// Count returns the number of rows of model matching the condition
func Count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
