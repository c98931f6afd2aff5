package config

type PostgresConfig struct {
	HostAddr string `yaml:"host"`
	User     string `yaml:"user"`
	Pass     string `yaml:"-" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"database"`
}

func (s *PostgresConfig) Host() string {
	return s.HostAddr
}

func (s *PostgresConfig) Username() string {
	return s.User
}

func (s *PostgresConfig) Password() string {
	return s.Pass
}

func (s *PostgresConfig) Database() string {
	return s.DBName
}
