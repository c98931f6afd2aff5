package config

type AgentConfig struct {
	ServiceURL string `yaml:"url"`
	ID         string `yaml:"agent-id"`
	Key        string `yaml:"-" env:"AGENT_API_KEY"`
}

func (s *AgentConfig) URL() string {
	return s.ServiceURL
}

func (s *AgentConfig) AgentID() string {
	return s.ID
}

func (s *AgentConfig) APIKey() string {
	return s.Key
}
