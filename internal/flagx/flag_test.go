package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-d", "app.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.yaml", "-d", "app.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.yaml"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-l"},
			allowedFlags: []string{"-l"},
			want:         []string{"-l"},
		},
		{
			name:         "flag followed by another flag takes no value",
			args:         []string{"-d", "-l", "debug"},
			allowedFlags: []string{"-d", "-l"},
			want:         []string{"-d", "-l", "debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "cfg.json", ConfigFileFlag([]string{"-d", "x.db", "-c", "cfg.json"}))
	assert.Equal(t, "cfg.yaml", ConfigFileFlag([]string{"-config=cfg.yaml"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-d", "x.db"}))
	assert.Equal(t, "", ConfigFileFlag(nil))
}
