package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func LoadEnv() Env {
	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:  getenv("DB_USER", "root"),
		DBPass:  strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:  getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:  getenv("DB_NAME", "travel_app"),
	}
}
