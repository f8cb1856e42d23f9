package models

// DefaultsConfig holds default run settings used when the current
// directory has no runlog.yaml.
type DefaultsConfig struct {
	Command   []string `yaml:"command"`
	LogPrefix string   `yaml:"log_prefix"`
	UsePTY    bool     `yaml:"use_pty"`
	LogDir    string   `yaml:"log_dir"` // empty = current working directory
}

// Settings represents global application settings.
// This corresponds to ~/.runlog/settings.yaml.
type Settings struct {
	Version       int            `yaml:"version"`
	Defaults      DefaultsConfig `yaml:"defaults"`
	PropagateExit bool           `yaml:"propagate_exit"`
	KeepSessions  int            `yaml:"keep_sessions"` // 0 = keep all sidecar files
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Defaults: DefaultsConfig{
			Command:   []string{"python", "answer.py"},
			LogPrefix: "Answer",
			UsePTY:    false,
			LogDir:    "",
		},
		PropagateExit: true,
		KeepSessions:  0,
	}
}
