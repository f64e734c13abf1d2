// Command inspectschema prints the DDL gorm generates for the socialdb models on SQLite.
package main

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/socialdb/internal/logging"
	"github.com/localnerve/socialdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	log := logging.Default()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var tables []string
	err = db.Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&tables).Error
	if err != nil {
		log.Fatal(err)
	}

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)

		var ddl []string
		err := db.Raw("SELECT sql FROM sqlite_master WHERE tbl_name = ? AND sql IS NOT NULL ORDER BY type DESC, name", table).
			Scan(&ddl).Error
		if err != nil {
			log.Fatal(err)
		}
		for _, stmt := range ddl {
			fmt.Println(stmt + ";")
		}
	}
}
