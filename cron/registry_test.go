package cron

import "testing"

func TestJobRegistration(t *testing.T) {
	var gotArgs []string
	Register("nightly-smoke", "@daily", func(args ...string) {
		gotArgs = append(gotArgs, args...)
	})
	defer Unregister("nightly-smoke")

	j, ok := Jobs()["nightly-smoke"]
	if !ok {
		t.Fatal("job missing after Register")
	}
	if j.Schedule != "@daily" {
		t.Errorf("schedule = %q, want @daily", j.Schedule)
	}
	j.Run("full")
	if len(gotArgs) != 1 || gotArgs[0] != "full" {
		t.Errorf("job args = %v, want [full]", gotArgs)
	}
}

func TestJobRegistration_DuplicateName(t *testing.T) {
	Register("nightly-twice", "@hourly", func(...string) {})
	defer Unregister("nightly-twice")
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("nightly-twice", "@weekly", func(...string) {})
}
