package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	AppName       string `json:"appname"`
	AppEnv        string `json:"appenv"`
	AppPort       uint16 `json:"appport"`
	GinMode       string `json:"ginmode"`
	DBDriver      string `json:"dbdriver"`
	DBHost        string `json:"dbhost"`
	DBPort        uint16 `json:"dbport"`
	DBName        string `json:"dbname"`
	DBUser        string `json:"dbuser"`
	DBPass        string `json:"dbpass"`
	SQLitePath    string `json:"sqlitepath"`
	SessionSecret string `json:"sessionsecret"`
	UploadDir     string `json:"uploaddir"`
}

var config *Config
var once sync.Once

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine; plain environment variables still apply.
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)

		config = &Config{
			AppName:       getEnv("APPNAME", "clinic-ehr"),
			AppEnv:        getEnv("APPENV", "development"),
			AppPort:       uint16(appPort),
			GinMode:       getEnv("GINMODE", "debug"),
			DBDriver:      getEnv("DBDRIVER", "sqlite"),
			DBHost:        os.Getenv("DBHOST"),
			DBPort:        uint16(dbPort),
			DBName:        os.Getenv("DBNAME"),
			DBUser:        os.Getenv("DBUSER"),
			DBPass:        os.Getenv("DBPASS"),
			SQLitePath:    getEnv("SQLITEPATH", "database.db"),
			SessionSecret: getEnv("SESSIONSECRET", "replace_this_with_a_random_secret"),
			UploadDir:     getEnv("UPLOADDIR", "static/uploads"),
		}
	})
	return config
}
