package workinghours

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	t.Parallel()

	t.Run("parses valid values", func(t *testing.T) {
		t.Parallel()
		cases := map[string]Minute{
			"00:00": 0,
			"09:00": 540,
			"17:30": 1050,
			"23:59": 1439,
		}
		for value, want := range cases {
			got, err := ParseClock(value)
			if err != nil {
				t.Errorf("ParseClock(%q) returned error: %v", value, err)
				continue
			}
			if got != want {
				t.Errorf("ParseClock(%q) = %d, want %d", value, got, want)
			}
		}
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"24:00", "12:60", "-1:00", "junk"} {
			if _, err := ParseClock(value); err == nil {
				t.Errorf("ParseClock(%q) succeeded, want error", value)
			}
		}
	})
}

func TestMinuteString(t *testing.T) {
	t.Parallel()

	if got := MustClock("08:05").String(); got != "08:05" {
		t.Errorf("String() = %q, want %q", got, "08:05")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := Validate(Default()); err != nil {
			t.Errorf("Validate(Default()) = %v, want nil", err)
		}
	})

	t.Run("reports every violated invariant by field", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.GreenStart = MustClock("17:00")
		cfg.GreenEnd = MustClock("09:00")
		cfg.WorkDays = map[int]bool{}

		err := Validate(cfg)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Validate error = %T, want *ValidationError", err)
		}
		for _, field := range []string{"green", "work_days"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("missing field error %q in %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("rejects orange morning overlapping green", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.OrangeMorningEnd = MustClock("09:30")

		err := Validate(cfg)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Validate error = %T, want *ValidationError", err)
		}
		if _, ok := vErr.FieldErrors["orange_morning_end"]; !ok {
			t.Errorf("expected orange_morning_end violation, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects orange evening starting inside green", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.OrangeEveningStart = MustClock("16:00")

		err := Validate(cfg)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Validate error = %T, want *ValidationError", err)
		}
		if _, ok := vErr.FieldErrors["orange_evening_start"]; !ok {
			t.Errorf("expected orange_evening_start violation, got %v", vErr.FieldErrors)
		}
	})

	t.Run("rejects weekday numbers outside ISO range", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.WorkDays = map[int]bool{0: true, 8: true}

		err := Validate(cfg)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Validate error = %T, want *ValidationError", err)
		}
		if _, ok := vErr.FieldErrors["work_days"]; !ok {
			t.Errorf("expected work_days violation, got %v", vErr.FieldErrors)
		}
	})
}

func TestResolver(t *testing.T) {
	t.Parallel()

	t.Run("falls back to default for unknown countries", func(t *testing.T) {
		t.Parallel()
		resolver := NewResolver(nil)

		got := resolver.Resolve("JP")
		want := Default()
		if got.GreenStart != want.GreenStart || got.GreenEnd != want.GreenEnd {
			t.Errorf("Resolve(JP) = %+v, want default %+v", got, want)
		}
	})

	t.Run("returns stored override case-insensitively", func(t *testing.T) {
		t.Parallel()
		override := Default()
		override.GreenStart = MustClock("10:00")
		resolver := NewResolver(nil)
		if err := resolver.Set("de", override); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}

		got := resolver.Resolve("DE")
		if got.GreenStart != MustClock("10:00") {
			t.Errorf("Resolve(DE).GreenStart = %v, want 10:00", got.GreenStart)
		}
	})

	t.Run("rejects invalid overrides at set time", func(t *testing.T) {
		t.Parallel()
		invalid := Default()
		invalid.WorkDays = nil
		resolver := NewResolver(nil)

		var vErr *ValidationError
		if err := resolver.Set("FR", invalid); !errors.As(err, &vErr) {
			t.Errorf("Set error = %v, want *ValidationError", err)
		}
		if got := resolver.Resolve("FR"); got.GreenStart != Default().GreenStart {
			t.Errorf("invalid override must not be stored, got %+v", got)
		}
	})

	t.Run("delete silently reverts to default", func(t *testing.T) {
		t.Parallel()
		override := Default()
		override.GreenEnd = MustClock("15:00")
		resolver := NewResolver(map[string]Config{"BR": override})

		resolver.Delete("BR")
		resolver.Delete("BR") // repeated deletes are no-ops

		if got := resolver.Resolve("BR"); got.GreenEnd != Default().GreenEnd {
			t.Errorf("Resolve(BR).GreenEnd = %v, want default", got.GreenEnd)
		}
	})

	t.Run("resolved configs are isolated copies", func(t *testing.T) {
		t.Parallel()
		resolver := NewResolver(nil)

		cfg := resolver.Resolve("US")
		cfg.WorkDays[6] = true

		if resolver.Resolve("US").IsWorkDay(6) {
			t.Error("mutating a resolved config leaked into the resolver")
		}
	})
}
