package lifecycle

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{input: "mount", expected: KindMount},
		{input: "Update", expected: KindUpdate},
		{input: " UNMOUNT ", expected: KindUnmount},
		{input: "render", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDecisionFunctions(t *testing.T) {
	// Expected values for cycles 0..7
	tests := []struct {
		kind   Kind
		render []bool
		record []bool
	}{
		{
			kind:   KindMount,
			render: []bool{false, true, false, true, false, true, false, true},
			record: []bool{false, true, false, true, false, true, false, true},
		},
		{
			kind:   KindUpdate,
			render: []bool{true, true, true, true, true, true, true, true},
			record: []bool{false, true, true, true, true, true, true, true},
		},
		{
			kind:   KindUnmount,
			render: []bool{false, true, false, true, false, true, false, true},
			record: []bool{true, false, true, false, true, false, true, false},
		},
		{
			kind:   Kind("bogus"),
			render: []bool{false, false, false, false, false, false, false, false},
			record: []bool{false, false, false, false, false, false, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			for cycle := range tt.render {
				if got := ShouldRender(tt.kind, cycle); got != tt.render[cycle] {
					t.Errorf("ShouldRender(%s, %d) = %v, want %v", tt.kind, cycle, got, tt.render[cycle])
				}
				if got := ShouldRecord(tt.kind, cycle); got != tt.record[cycle] {
					t.Errorf("ShouldRecord(%s, %d) = %v, want %v", tt.kind, cycle, got, tt.record[cycle])
				}
			}
		})
	}
}

func TestIsDone(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		n      int
		doneAt int
	}{
		{name: "mount n=1", kind: KindMount, n: 1, doneAt: 1},
		{name: "mount n=5", kind: KindMount, n: 5, doneAt: 9},
		{name: "unmount n=3", kind: KindUnmount, n: 3, doneAt: 5},
		{name: "update n=1", kind: KindUpdate, n: 1, doneAt: 1},
		{name: "update n=4", kind: KindUpdate, n: 4, doneAt: 4},
		{name: "unknown", kind: Kind("bogus"), n: 10, doneAt: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for cycle := 0; cycle <= tt.doneAt+2; cycle++ {
				want := cycle >= tt.doneAt
				if got := IsDone(tt.kind, cycle, tt.n); got != want {
					t.Errorf("IsDone(%s, %d, %d) = %v, want %v", tt.kind, cycle, tt.n, got, want)
				}
			}
		})
	}
}

// Every recorded cycle up to completion yields exactly n samples.
func TestDecisionFunctions_SampleCount(t *testing.T) {
	for _, kind := range Kinds {
		for n := 1; n <= 20; n++ {
			recorded := 0
			cycle := 0
			for ; ; cycle++ {
				if ShouldRecord(kind, cycle) {
					recorded++
				}
				if IsDone(kind, cycle, n) {
					break
				}
			}
			if recorded != n {
				t.Errorf("%s n=%d: recorded %d cycles, want %d", kind, n, recorded, n)
			}
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantFields []string
	}{
		{
			name: "valid",
			cfg:  Config{Kind: KindMount, Samples: 10},
		},
		{
			name:       "zero samples",
			cfg:        Config{Kind: KindUpdate},
			wantFields: []string{"samples"},
		},
		{
			name:       "everything wrong",
			cfg:        Config{Kind: "paint", Samples: -1, Timeout: -1},
			wantFields: []string{"kind", "samples", "timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() error = %T, want *ConfigError", err)
			}
			if len(cfgErr.Errors) != len(tt.wantFields) {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(cfgErr.Errors), len(tt.wantFields), err)
			}
			for i, field := range tt.wantFields {
				if cfgErr.Errors[i].Field != field {
					t.Errorf("error[%d].Field = %q, want %q", i, cfgErr.Errors[i].Field, field)
				}
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Kind: KindMount, Samples: 1}
	cfg.ApplyDefaults()
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
}
