package cli

import (
	"testing"
)

func TestRootHasSubcommands(t *testing.T) {
	for _, name := range []string{"read", "detect"} {
		found := false
		for _, c := range RootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if RootCmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("log-level persistent flag not registered")
	}
}

func TestReadFlagDefaults(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"langs", "[en]"},
		{"min-size", "20"},
		{"text-threshold", "0.7"},
		{"low-text", "0.4"},
		{"link-threshold", "0.4"},
		{"canvas-size", "2560"},
		{"mag-ratio", "1"},
		{"slope-ths", "0.1"},
		{"ycenter-ths", "0.5"},
		{"height-ths", "0.5"},
		{"width-ths", "0.5"},
		{"add-margin", "0.1"},
		{"decoder", "greedy"},
		{"beam-width", "5"},
		{"contrast-ths", "0.1"},
		{"adjust-contrast", "0.5"},
		{"detail", "1"},
		{"paragraph", "false"},
	}
	for _, tt := range tests {
		f := readCmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("flag %q not registered", tt.flag)
			continue
		}
		if f.DefValue != tt.want {
			t.Errorf("flag %q default = %q, want %q", tt.flag, f.DefValue, tt.want)
		}
	}
}

func TestDetectFlagsShared(t *testing.T) {
	for _, flag := range []string{"min-size", "text-threshold", "optimal-num-chars", "langs", "model-dir"} {
		if detectCmd.Flags().Lookup(flag) == nil {
			t.Errorf("detect flag %q not registered", flag)
		}
	}
}
