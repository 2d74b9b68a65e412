package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// loadEnvFiles merges KEY=VALUE pairs from the given files if they exist.
// It is a best-effort helper for local development; missing files are skipped.
func loadEnvFiles(v *viper.Viper, paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		env := viper.New()
		env.SetConfigFile(path)
		env.SetConfigType("env")
		if err := env.ReadInConfig(); err != nil {
			log.Printf("config: read %s: %v", path, err)
			continue
		}
		if err := v.MergeConfigMap(env.AllSettings()); err != nil {
			log.Printf("config: merge %s: %v", path, err)
		}
	}
}
