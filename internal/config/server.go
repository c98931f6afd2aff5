package config

type ServerConfig struct {
	HTTPPort int `yaml:"port"`
}

func (s *ServerConfig) Port() int {
	if s.HTTPPort == 0 {
		return 8080
	}
	return s.HTTPPort
}
