package config

import (
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Server struct {
		Port        string   `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_allow_origins"`
	} `yaml:"server"`
	LLM struct {
		Provider       string   `yaml:"provider"`
		APIKey         string   `yaml:"api_key"`
		Model          string   `yaml:"model"`
		BaseURL        string   `yaml:"base_url"`
		Temperature    *float64 `yaml:"temperature"`
		MaxTokens      int      `yaml:"max_tokens"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	Storage struct {
		UploadDir     string `yaml:"upload_dir"`
		OutputDir     string `yaml:"output_dir"`
		MaxUploadSize int64  `yaml:"max_upload_size"`
	} `yaml:"storage"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} references; unknown variables are left as written.
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &fc); err != nil {
		return err
	}

	setString(&cfg.Port, fc.Server.Port)
	setString(&cfg.Env, fc.Server.Env)
	if len(fc.Server.CORSOrigins) > 0 {
		cfg.CORSAllowOrigin = fc.Server.CORSOrigins
	}
	setString(&cfg.LLMProvider, fc.LLM.Provider)
	setString(&cfg.LLMAPIKey, fc.LLM.APIKey)
	setString(&cfg.LLMModel, fc.LLM.Model)
	setString(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	if fc.LLM.Temperature != nil {
		cfg.LLMTemperature = *fc.LLM.Temperature
	}
	if fc.LLM.MaxTokens > 0 {
		cfg.LLMMaxTokens = fc.LLM.MaxTokens
	}
	if fc.LLM.TimeoutSeconds > 0 {
		cfg.LLMTimeout = time.Duration(fc.LLM.TimeoutSeconds) * time.Second
	}
	setString(&cfg.UploadDir, fc.Storage.UploadDir)
	setString(&cfg.OutputDir, fc.Storage.OutputDir)
	if fc.Storage.MaxUploadSize > 0 {
		cfg.MaxUploadSize = fc.Storage.MaxUploadSize
	}
	setString(&cfg.LogLevel, fc.Logging.Level)
	setString(&cfg.AppName, fc.App.Name)
	setString(&cfg.AppVersion, fc.App.Version)
	return nil
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
