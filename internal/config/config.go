package config

import "fmt"

type Config struct {
	Channel     ChannelConfig     `yaml:"channel"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Transcribe  TranscribeConfig  `yaml:"transcribe"`
	Captions    CaptionsConfig    `yaml:"captions"`
	Git         GitConfig         `yaml:"git"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`

	// Secrets are loaded from the environment, never from the YAML file.
	Secrets Secrets `yaml:"-"`
}

type ChannelConfig struct {
	URL        string `yaml:"url"`
	MaxResults int    `yaml:"max_results"`
}

// CatalogConfig points at the livestream catalog. When Owner/Repo are set the
// catalog is fetched from the GitHub contents API, otherwise File is read locally.
type CatalogConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Path  string `yaml:"path"`
	File  string `yaml:"file"`
}

type TranscribeConfig struct {
	Model            string `yaml:"model"`
	Language         string `yaml:"language"`
	AudioURLTemplate string `yaml:"audio_url_template"`
	PerRun           int    `yaml:"per_run"`
}

type CaptionsConfig struct {
	Languages    []string `yaml:"languages"`
	Limit        int      `yaml:"limit"`
	DelaySeconds int      `yaml:"delay_seconds"`
}

type GitConfig struct {
	Enabled     bool   `yaml:"enabled"`
	RepoDir     string `yaml:"repo_dir"`
	Remote      string `yaml:"remote"`
	Message     string `yaml:"message"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

type ScheduleConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
}

type PathsConfig struct {
	Transcripts string `yaml:"transcripts"`
	Summaries   string `yaml:"summaries"`
	StateDB     string `yaml:"state_db"`
	Temp        string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

func (c *Config) Validate() error {
	if c.Channel.MaxResults < 0 {
		return fmt.Errorf("channel.max_results must not be negative")
	}
	if c.Transcribe.PerRun < 0 {
		return fmt.Errorf("transcribe.per_run must not be negative")
	}
	if c.Captions.Limit < 0 {
		return fmt.Errorf("captions.limit must not be negative")
	}
	if c.Captions.DelaySeconds < 0 {
		return fmt.Errorf("captions.delay_seconds must not be negative")
	}
	if c.Schedule.IntervalMinutes < 0 {
		return fmt.Errorf("schedule.interval_minutes must not be negative")
	}

	if c.Channel.MaxResults == 0 {
		c.Channel.MaxResults = 50
	}
	if c.Catalog.File == "" {
		c.Catalog.File = "livestreams.json"
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = "livestreams.json"
	}
	if c.Transcribe.Model == "" {
		c.Transcribe.Model = "whisper-large-v3-turbo"
	}
	if c.Transcribe.Language == "" {
		c.Transcribe.Language = "ja"
	}
	if c.Transcribe.PerRun == 0 {
		c.Transcribe.PerRun = 1
	}
	if len(c.Captions.Languages) == 0 {
		c.Captions.Languages = []string{"ja", "en"}
	}
	if c.Captions.Limit == 0 {
		c.Captions.Limit = 1
	}
	if c.Captions.DelaySeconds == 0 {
		c.Captions.DelaySeconds = 2
	}
	if c.Git.RepoDir == "" {
		c.Git.RepoDir = "."
	}
	if c.Git.Remote == "" {
		c.Git.Remote = "origin"
	}
	if c.Git.Message == "" {
		c.Git.Message = "Add transcripts"
	}
	if c.Schedule.IntervalMinutes == 0 {
		c.Schedule.IntervalMinutes = 60
	}
	if c.Paths.Transcripts == "" {
		c.Paths.Transcripts = "transcripts"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "summaries"
	}
	if c.Paths.StateDB == "" {
		c.Paths.StateDB = "data/pipeline.db"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
