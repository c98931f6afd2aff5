package config

type AppConfig struct {
	StorageBackend string `yaml:"storage-backend"`
	TrendDays      int    `yaml:"trend-window-days"`
	SeedSamples    bool   `yaml:"seed-sample-data"`
}

// Storage names the record store backend: "memory" or "postgres".
func (s *AppConfig) Storage() string {
	if s.StorageBackend == "" {
		return "memory"
	}
	return s.StorageBackend
}

func (s *AppConfig) TrendWindowDays() int {
	return s.TrendDays
}

func (s *AppConfig) SeedSampleData() bool {
	return s.SeedSamples
}
