package settings

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestBirthday_ZeroValueIsUnset(t *testing.T) {
	var b Birthday
	if b.IsSet() {
		t.Error("zero Birthday should be unset")
	}
	if _, ok := b.Unix(); ok {
		t.Error("unset Birthday should have no Unix value")
	}
	if !b.Equal(Unset()) {
		t.Error("zero Birthday should equal Unset()")
	}
	if b.String() != "unset" {
		t.Errorf("String() = %q, want unset", b.String())
	}
}

func TestBirthdayFromUnix(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    time.Time
		wantOK  bool
	}{
		{"whole seconds", 645438600, time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC), true},
		{"half second", 645438600.5, time.Date(1990, 6, 15, 8, 30, 0, 500_000_000, time.UTC), true},
		{"before epoch", -1.25, time.Date(1969, 12, 31, 23, 59, 58, 750_000_000, time.UTC), true},
		{"far future", 1e17, time.Unix(1e17, 0), true},
		{"far past", -1e17, time.Unix(-1e17, 0), true},
		{"NaN", math.NaN(), time.Time{}, false},
		{"+Inf", math.Inf(1), time.Time{}, false},
		{"-Inf", math.Inf(-1), time.Time{}, false},
		{"below int64", -1e19, time.Time{}, false},
		{"above int64", 1e19, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := BirthdayFromUnix(tt.seconds)
			if ok != tt.wantOK {
				t.Fatalf("BirthdayFromUnix(%v) ok = %v, want %v", tt.seconds, ok, tt.wantOK)
			}
			if ValidUnixSeconds(tt.seconds) != tt.wantOK {
				t.Errorf("ValidUnixSeconds(%v) = %v, want %v", tt.seconds, !tt.wantOK, tt.wantOK)
			}
			if !ok {
				if b.IsSet() {
					t.Errorf("rejected value produced a set birthday %v", b)
				}
				return
			}
			got, _ := b.Get()
			if !got.Equal(tt.want) {
				t.Errorf("BirthdayFromUnix(%v) = %v, want %v", tt.seconds, got.UTC(), tt.want)
			}
		})
	}
}

func TestBirthday_Unix(t *testing.T) {
	b := BirthdayAt(time.Date(1990, 6, 15, 8, 30, 0, 500_000_000, time.UTC))
	sec, ok := b.Unix()
	if !ok || sec != 645438600.5 {
		t.Errorf("Unix() = %v, %v; want 645438600.5, true", sec, ok)
	}
}

func TestParseBirthday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"1990-06-15T08:30:00Z", time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC), false},
		{"1990-06-15T08:30:00.25+02:00", time.Date(1990, 6, 15, 6, 30, 0, 250_000_000, time.UTC), false},
		{"1990-06-15", time.Date(1990, 6, 15, 0, 0, 0, 0, tokyo), false},
		{"1990-06-15T08:30", time.Date(1990, 6, 15, 8, 30, 0, 0, tokyo), false},
		{"1990-06-15 08:30:15", time.Date(1990, 6, 15, 8, 30, 15, 0, tokyo), false},
		{"@645438600", time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC), false},
		{"@nope", time.Time{}, true},
		{"@-1e19", time.Time{}, true},
		{"@1e19", time.Time{}, true},
		{"@NaN", time.Time{}, true},
		{"@Inf", time.Time{}, true},
		{"15/06/1990", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBirthday(tt.in, tokyo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBirthday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidBirthday) {
					t.Errorf("error = %v, want ErrInvalidBirthday", err)
				}
				return
			}
			at, _ := got.Get()
			if !at.Equal(tt.want) {
				t.Errorf("ParseBirthday(%q) = %v, want %v", tt.in, at, tt.want)
			}
		})
	}
}
