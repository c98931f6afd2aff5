package config

type TelegramConfig struct {
	BotToken string `yaml:"-" env:"TELEGRAM_TOKEN"`
}

func (s *TelegramConfig) Token() string {
	return s.BotToken
}
