package config

type Config struct {
	Host                 string     `json:"host,omitempty"`
	Port                 int        `json:"port,omitempty"`
	Debug                bool       `json:"debug,omitempty"`
	LocationsFile        string     `json:"locations_file,omitempty"`
	UseCache             bool       `json:"use_cache,omitempty"`
	CacheLocation        string     `json:"cache_location,omitempty"`
	CachePollingInterval int        `json:"cache_polling_interval,omitempty"`
	CacheMaxBytes        int64      `json:"cache_max_bytes,omitempty"`
	MaxPreviewPoints     int        `json:"max_preview_points,omitempty"`
	LocationDetails      []Location `json:"location_details,omitempty"`
}

// Location is one place spectrum files are served from: a local directory
// or a MinIO bucket.
type Location struct {
	LocationName   string `json:"location_name"`
	LocationType   string `json:"location_type"`
	Path           string `json:"path,omitempty"`
	MinioBucket    string `json:"minio_bucket,omitempty"`
	Location       string `json:"location,omitempty"`
	MinioUseSSL    bool   `json:"minio_use_ssl,omitempty"`
	MinioAccessKey string `json:"minio_access_key,omitempty"`
	MinioSecretKey string `json:"minio_secret_key,omitempty"`
}
