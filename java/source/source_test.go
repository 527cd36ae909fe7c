package source

import (
	"errors"
	"testing"

	"github.com/dhamidi/jparse/java/diag"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr error
	}{
		{"8", JDK8, nil},
		{"1.8", JDK8, nil},
		{"1.7", JDK7, nil},
		{"17", JDK17, nil},
		{"17.0", JDK17, nil},
		{" 11 ", JDK11, nil},
		{"6", 0, ErrUnknownLevel},
		{"21", 0, ErrUnknownLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseLevel(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLevelMalformed(t *testing.T) {
	if _, err := ParseLevel("seventeen"); err == nil {
		t.Errorf("ParseLevel(seventeen) error = nil, want error")
	}
}

func TestLevelString(t *testing.T) {
	if got := JDK8.String(); got != "1.8" {
		t.Errorf("JDK8.String() = %q, want 1.8", got)
	}
	if got := JDK17.String(); got != "17" {
		t.Errorf("JDK17.String() = %q, want 17", got)
	}
	if got := JDK8.Name(); got != "8" {
		t.Errorf("JDK8.Name() = %q, want 8", got)
	}
}

func TestAllowedInSource(t *testing.T) {
	tests := []struct {
		feature Feature
		level   Level
		want    bool
	}{
		{Lambda, JDK7, false},
		{Lambda, JDK8, true},
		{TextBlocks, JDK14, false},
		{TextBlocks, JDK15, true},
		{Records, JDK16, true},
		{SealedClasses, JDK16, false},
		{UnderscoreIdentifier, JDK8, true},
		{UnderscoreIdentifier, JDK9, false},
	}

	for _, tt := range tests {
		t.Run(tt.feature.String(), func(t *testing.T) {
			if got := tt.feature.AllowedInSource(tt.level); got != tt.want {
				t.Errorf("AllowedInSource(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		preview  Preview
		level    Level
		feature  Feature
		wantOK   bool
		wantKey  diag.Key
		severity diag.Severity
	}{
		{"allowed", Preview{Level: JDK17}, JDK17, Records, true, "", 0},
		{"too old", Preview{Level: JDK11}, JDK11, Records, false, diag.FeatureNotSupported, diag.Error},
		{"preview disabled", Preview{Level: JDK17}, JDK17, PatternSwitch, false, diag.PreviewFeatureDisabled, diag.Error},
		{"preview enabled", Preview{Enabled: true, Level: JDK17}, JDK17, PatternSwitch, true, diag.PreviewFeatureUse, diag.Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := diag.NewLog("")
			p := tt.preview
			p.Handler = log
			if got := Check(log, &p, tt.level, 7, tt.feature); got != tt.wantOK {
				t.Errorf("Check() = %v, want %v", got, tt.wantOK)
			}
			ds := log.Diagnostics()
			if tt.wantKey == "" {
				if len(ds) != 0 {
					t.Errorf("diagnostics = %v, want none", ds)
				}
				return
			}
			if len(ds) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(ds), ds)
			}
			if ds[0].Key != tt.wantKey || ds[0].Severity != tt.severity || ds[0].Pos != 7 {
				t.Errorf("diagnostic = %s %v at %d, want %s %v at 7", ds[0].Key, ds[0].Severity, ds[0].Pos, tt.wantKey, tt.severity)
			}
			if !ds[0].Flags.Has(diag.SourceLevel) {
				t.Errorf("Flags = %v, want SourceLevel", ds[0].Flags)
			}
		})
	}
}

func TestFeatureNotSupportedMessage(t *testing.T) {
	log := diag.NewLog("")
	Check(log, &Preview{Level: JDK11}, JDK11, 0, Records)
	want := "records are not supported in -source 11 (use -source 16 or higher)"
	if got := log.Errors()[0].Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
