package services

import (
	"github.com/localnerve/socialdb/internal/authz"
	"github.com/localnerve/socialdb/internal/database"
	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// quiet silences the gorm logger for lookups where a missing row is an expected outcome
func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// tagged labels a list query with a SQL comment so it can be found in slow query logs
func tagged(db *gorm.DB, name string) *gorm.DB {
	return db.Clauses(hints.Comment("select", "socialdb:"+name))
}

// forUpdate adds a row lock where the dialect has SELECT ... FOR UPDATE
func forUpdate(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "sqlite", "sqlserver":
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// findByID loads a row by primary key, mapping a missing row to NotFound
func findByID(db *gorm.DB, dest interface{}, id uint, what string) error {
	err := quiet(db).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound("%s not found", what)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load %s %d", what, id)
	}
	return nil
}

// lockByID is findByID with a row lock, for use inside a transaction
func lockByID(tx *gorm.DB, dest interface{}, id uint, what string) error {
	return findByID(forUpdate(tx), dest, id, what)
}

// insertJoinRow adds a membership row, leaving an existing identical row in place
func insertJoinRow(tx *gorm.DB, row interface{}, what string) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	return errors.Wrapf(err, "failed to add %s", what)
}

// storeError maps a unique violation to Conflict and wraps anything else
func storeError(err error, conflict string, action string) error {
	if err == nil {
		return nil
	}
	if _, ok := types.AsCustomError(err); ok {
		return err
	}
	if database.IsDuplicateKey(err) {
		return types.Conflict("%s", conflict)
	}
	return errors.Wrap(err, action)
}

func requireActor(actor *models.User) error {
	if actor == nil {
		return types.Unauthorized("Authentication required")
	}
	return nil
}

func loadEvent(db *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := findByID(db, &event, id, "Event"); err != nil {
		return nil, err
	}
	return &event, nil
}

func loadGroup(db *gorm.DB, id uint) (*models.Group, error) {
	var group models.Group
	if err := findByID(db, &group, id, "Group"); err != nil {
		return nil, err
	}
	return &group, nil
}

func requireUserExists(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := findByID(db, &user, id, "User"); err != nil {
		return nil, err
	}
	return &user, nil
}

// viewableEvent loads an event and applies the visibility rule
func viewableEvent(db *gorm.DB, eventID uint, actor *models.User, what string) (*models.Event, error) {
	event, err := loadEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewEvent(db, event, actor) {
		return nil, types.Forbidden("Not allowed to view %s", what)
	}
	return event, nil
}

// requireEventMember checks that the actor takes part in the event
func requireEventMember(db *gorm.DB, eventID uint, actor *models.User, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !authz.IsEventMember(db, eventID, actor.ID) {
		return types.Forbidden("Only event participants or organizers can %s", action)
	}
	return nil
}

// requireEventOrganizer checks that the actor organizes the event
func requireEventOrganizer(db *gorm.DB, eventID uint, actor *models.User, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !authz.IsEventOrganizer(db, eventID, actor.ID) {
		return types.Forbidden("Only organizers can %s", action)
	}
	return nil
}

// requireGroupAdmin checks that the actor administers the group
func requireGroupAdmin(db *gorm.DB, groupID uint, actor *models.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !authz.IsGroupAdmin(db, groupID, actor.ID) {
		return types.Forbidden("Admin permissions required")
	}
	return nil
}

// usersIn loads the user summaries for the user ids selected by the join query
func usersIn(db *gorm.DB, joinQuery *gorm.DB, name string) ([]models.UserSummary, error) {
	var users []models.User
	err := tagged(db, name).
		Where("id IN (?)", joinQuery).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", name)
	}
	return models.Summaries(users), nil
}
