package config

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectDatabase opens the relational store selected by DBDRIVER.
// The default is a local SQLite file; DBDRIVER=mysql switches to a MySQL
// server described by the DBHOST/DBPORT/DBNAME/DBUSER/DBPASS values.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}
