package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/brocat-app/brocat/internal/flagx"
	"github.com/brocat-app/brocat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "6s"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	MediaBaseURL         string         `json:"media_base_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	CatalogTimeout       timex.Duration `json:"catalog_timeout"`
	SuppressFor          timex.Duration `json:"suppress_for"`
	UnauthorizedCooldown timex.Duration `json:"unauthorized_cooldown"`
	CacheDSN             string         `json:"cache_dsn"`
	CredsDir             string         `json:"creds_dir"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. Absent file means no overlay; unset fields keep their
// current values. Read and unmarshal errors panic, as the app cannot run on
// a config the user explicitly pointed at but that cannot be parsed.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.MediaBaseURL != "" {
		cfg.MediaBaseURL = jc.MediaBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.CatalogTimeout.Duration > 0 {
		cfg.CatalogTimeout = time.Duration(jc.CatalogTimeout.Duration)
	}
	if jc.SuppressFor.Duration > 0 {
		cfg.SuppressFor = time.Duration(jc.SuppressFor.Duration)
	}
	if jc.UnauthorizedCooldown.Duration > 0 {
		cfg.UnauthorizedCooldown = time.Duration(jc.UnauthorizedCooldown.Duration)
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.CredsDir != "" {
		cfg.CredsDir = jc.CredsDir
	}
}
