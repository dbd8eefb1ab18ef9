package processing

import (
	"testing"
)

func TestParams_String(t *testing.T) {
	params := Params{"key1": "value1", "key2": 123}

	if val := params.String("key1", "default"); val != "value1" {
		t.Errorf("Expected 'value1', got '%s'", val)
	}
	if val := params.String("key2", "default"); val != "default" {
		t.Errorf("Expected 'default', got '%s'", val)
	}
	if val := params.String("key3", "default"); val != "default" {
		t.Errorf("Expected 'default', got '%s'", val)
	}
}

func TestParams_Int(t *testing.T) {
	params := Params{
		"key1": 123,
		"key2": int64(456),
		"key3": float64(789),
		"key4": "not-an-int",
	}

	tests := []struct {
		key  string
		want int
	}{
		{key: "key1", want: 123},
		{key: "key2", want: 456},
		{key: "key3", want: 789},
		{key: "key4", want: 999},
		{key: "key5", want: 999},
	}
	for _, tt := range tests {
		if got := params.Int(tt.key, 999); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.key, tt.want, got)
		}
	}
}

func TestParams_Bool(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		fallback bool
		want     bool
	}{
		{name: "native true", value: true, fallback: false, want: true},
		{name: "native false", value: false, fallback: true, want: false},
		{name: "string true", value: " TRUE ", fallback: false, want: true},
		{name: "string false", value: "false", fallback: true, want: false},
		{name: "unrecognized string", value: "maybe", fallback: true, want: true},
		{name: "wrong type", value: 1, fallback: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Params{"flag": tt.value}).Bool("flag", tt.fallback); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if got := (Params{}).Bool("flag", true); !got {
		t.Error("Expected fallback for missing key")
	}
}

func TestParams_Require(t *testing.T) {
	params := Params{"param1": "value1", "param2": 123}

	if err := params.Require("param1", "param2"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := params.Require("param1", "param3"); err == nil {
		t.Error("Expected error for missing required param")
	}
	if err := params.Require(); err != nil {
		t.Errorf("Expected no error for empty required list, got %v", err)
	}
}

func TestParams_PositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		want    int
		wantErr bool
	}{
		{name: "positive", params: Params{"n": 5}, want: 5},
		{name: "float from json", params: Params{"n": float64(7)}, want: 7},
		{name: "missing", params: Params{}, wantErr: true},
		{name: "zero", params: Params{"n": 0}, wantErr: true},
		{name: "negative", params: Params{"n": -3}, wantErr: true},
		{name: "wrong type", params: Params{"n": "five"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.PositiveInt("n")
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
