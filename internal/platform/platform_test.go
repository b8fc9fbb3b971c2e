package platform

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

type fakeRunner struct {
	results map[string]Result
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, _ ...string) Result {
	f.calls = append(f.calls, name)
	if res, ok := f.results[name]; ok {
		return res
	}
	return Result{ExitCode: -1, Err: exec.ErrNotFound}
}

var (
	glibcOK     = Result{Stdout: []byte("glibc 2.39\n")}
	probeFailed = Result{ExitCode: 1, Stderr: []byte("getconf: Unrecognized variable")}
	muslStderr  = Result{ExitCode: 1, Stderr: []byte("musl libc (x86_64)\nVersion 1.2.4\n")}
	muslStdout  = Result{Stdout: []byte("musl libc (aarch64)\n")}
	glibcLdd    = Result{Stdout: []byte("ldd (GNU libc) 2.39\n")}
)

func TestDetect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		goos      string
		results   map[string]Result
		want      Tag
		wantCalls int
	}{
		{
			name:    "darwin is returned unchanged without probing",
			goos:    "darwin",
			results: map[string]Result{"ldd": muslStdout},
			want:    "darwin",
		},
		{
			name:    "windows is returned unchanged without probing",
			goos:    "windows",
			results: map[string]Result{"getconf": probeFailed, "ldd": muslStderr},
			want:    "windows",
		},
		{
			name:      "getconf success wins over a musl ldd",
			goos:      "linux",
			results:   map[string]Result{"getconf": glibcOK, "ldd": muslStdout},
			want:      "linux",
			wantCalls: 1,
		},
		{
			name:      "missing getconf falls back to ldd stderr on exit 1",
			goos:      "linux",
			results:   map[string]Result{"ldd": muslStderr},
			want:      "linux-musl",
			wantCalls: 2,
		},
		{
			name:      "failing getconf falls back to ldd stdout on exit 0",
			goos:      "linux",
			results:   map[string]Result{"getconf": probeFailed, "ldd": muslStdout},
			want:      "linux-musl",
			wantCalls: 2,
		},
		{
			name:      "ldd reporting glibc keeps the plain name",
			goos:      "linux",
			results:   map[string]Result{"getconf": probeFailed, "ldd": glibcLdd},
			want:      "linux",
			wantCalls: 2,
		},
		{
			name: "musl marker on the wrong stream is ignored",
			goos: "linux",
			results: map[string]Result{
				"getconf": probeFailed,
				"ldd":     {ExitCode: 0, Stderr: []byte("musl libc")},
			},
			want:      "linux",
			wantCalls: 2,
		},
		{
			name: "ldd with another exit code is ignored",
			goos: "linux",
			results: map[string]Result{
				"getconf": probeFailed,
				"ldd":     {ExitCode: 2, Stdout: []byte("musl"), Stderr: []byte("musl")},
			},
			want:      "linux",
			wantCalls: 2,
		},
		{
			name: "signaled ldd abandons detection",
			goos: "linux",
			results: map[string]Result{
				"getconf": probeFailed,
				"ldd":     {ExitCode: -1, Signaled: true, Stderr: []byte("musl")},
			},
			want:      "linux",
			wantCalls: 2,
		},
		{
			name: "signaled getconf is not a success",
			goos: "linux",
			results: map[string]Result{
				"getconf": {ExitCode: -1, Signaled: true},
				"ldd":     muslStderr,
			},
			want:      "linux-musl",
			wantCalls: 2,
		},
		{
			name:      "no probes available",
			goos:      "linux",
			results:   map[string]Result{},
			want:      "linux",
			wantCalls: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			runner := &fakeRunner{results: tc.results}
			d := &Detector{GOOS: tc.goos, Runner: runner}

			if got := d.Detect(context.Background()); got != tc.want {
				t.Errorf("Detect() = %q, want %q", got, tc.want)
			}
			if len(runner.calls) != tc.wantCalls {
				t.Errorf("expected %d probe calls, got %v", tc.wantCalls, runner.calls)
			}
		})
	}
}

func TestResultSucceeded(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		res  Result
		want bool
	}{
		{"clean exit", Result{}, true},
		{"non-zero exit", Result{ExitCode: 1}, false},
		{"signaled", Result{ExitCode: -1, Signaled: true}, false},
		{"not started", Result{ExitCode: -1, Err: errors.New("not found")}, false},
	}

	for _, tc := range testCases {
		if got := tc.res.Succeeded(); got != tc.want {
			t.Errorf("%s: Succeeded() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	t.Parallel()

	res := ExecRunner{}.Run(context.Background(), "relpub-definitely-not-a-command")
	if res.Err == nil {
		t.Fatal("expected an error for a missing binary")
	}
	if res.ExitCode != -1 || res.Signaled {
		t.Errorf("unexpected result %+v", res)
	}
}
