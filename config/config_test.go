package config

import "testing"

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			vars: map[string]string{},
			want: Config{Level: "arena.json", LogLevel: "info", MaxDelta: 0.1},
		},
		{
			name: "overrides",
			vars: map[string]string{
				"PATROL_LEVEL":         "maze.json",
				"PATROL_DEBUG":         "true",
				"PATROL_LOG_LEVEL":     "debug",
				"PATROL_WATCH_PREFABS": "1",
				"PATROL_MAX_DELTA":     "0.05",
			},
			want: Config{Level: "maze.json", Debug: true, LogLevel: "debug", WatchPrefabs: true, MaxDelta: 0.05},
		},
		{
			name:    "bad_bool",
			vars:    map[string]string{"PATROL_DEBUG": "sometimes"},
			wantErr: true,
		},
		{
			name:    "negative_delta",
			vars:    map[string]string{"PATROL_MAX_DELTA": "-1"},
			wantErr: true,
		},
		{
			name:    "unknown_log_level",
			vars:    map[string]string{"PATROL_LOG_LEVEL": "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFrom(tt.vars)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
