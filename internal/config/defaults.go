package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/kasane/data/db/papers.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/kasane/data/indices/bleve"
	}
	if cfg.Storage.VectorSnapshotPath == "" {
		cfg.Storage.VectorSnapshotPath = "/usr/local/var/kasane/data/indices/papers.ksnp"
	}
	if cfg.Storage.ImageSnapshotPath == "" {
		cfg.Storage.ImageSnapshotPath = "/usr/local/var/kasane/data/indices/images.ksnp"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.ImageDimensions == 0 {
		cfg.Embedding.ImageDimensions = 768
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.SemanticWeight == 0 {
		cfg.Search.SemanticWeight = 0.7
	}
	if cfg.Images.Extensions == nil {
		cfg.Images.Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff"}
	}
	if cfg.Source.ListingURL == "" && cfg.Source.Year != 0 {
		cfg.Source.ListingURL = neuripsListingURL(cfg.Source.Year)
	}
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = "https://papers.nips.cc"
	}
}
