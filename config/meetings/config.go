package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      int    `env:"PORT" env-default:"8080"`
	DBPath    string `env:"DB_PATH" env-default:"meetings.db"`
	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`
	GenAI     GenAIConfig
}

type GenAIConfig struct {
	APIKey             string `env:"GENAI_API_KEY"`
	BaseURL            string `env:"GENAI_BASE_URL"`
	TranscriptionModel string `env:"GENAI_TRANSCRIPTION_MODEL" env-default:"whisper-1"`
	SummaryModel       string `env:"GENAI_SUMMARY_MODEL" env-default:"gpt-4o-mini"`
}

func MustLoad() *Config {
	// Local development reads a .env file when present; absence is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("failed to read environment variables: " + err.Error())
	}

	return &cfg
}
