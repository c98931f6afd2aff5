package config

type MemcachedConfig struct {
	HostsList []string `yaml:"hosts"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.HostsList
}
