package builder

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/containerd/errdefs"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}

// Records invocations crossing the command boundary.
type recordingRunner struct {
	name string
	args []string
	err  error
	n    int
}

func (r *recordingRunner) run(ctx context.Context, name string, args ...string) error {
	r.n++
	r.name = name
	r.args = args
	return r.err
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{
			name:   "squashfs",
			format: Squashfs,
			want:   []string{"singularity", "build", "R-3.3.1.simg", "Singularity.R-3.3.1"},
		},
		{
			name:   "ext3",
			format: Ext3,
			want:   []string{"singularity", "build", "--writable", "R-3.3.1.img", "Singularity.R-3.3.1"},
		},
		{
			name:   "sandbox",
			format: Sandbox,
			want:   []string{"singularity", "build", "--sandbox", "R-3.3.1", "Singularity.R-3.3.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())

			runner := &recordingRunner{}
			b := &Builder{Run: runner.run}

			err := b.Build(context.Background(), "Singularity.R-3.3.1", Target{Stem: "R-3.3.1", Format: tt.format})
			if err != nil {
				t.Fatalf("Build returned error: %v", err)
			}
			if runner.n != 1 {
				t.Fatalf("runner invoked %d times, want 1", runner.n)
			}
			if runner.name != "sudo" {
				t.Fatalf("command = %q, want sudo", runner.name)
			}
			if len(runner.args) != len(tt.want) {
				t.Fatalf("args = %v, want %v", runner.args, tt.want)
			}
			for i := range tt.want {
				if runner.args[i] != tt.want[i] {
					t.Fatalf("args[%d] = %q, want %q", i, runner.args[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildAlreadyExists(t *testing.T) {
	chdir(t, t.TempDir())

	if err := os.WriteFile("bzip2-1.0.6.simg", []byte("image"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &recordingRunner{}
	b := &Builder{Run: runner.run}

	err := b.Build(context.Background(), "Singularity.bzip2-1.0.6", Target{Stem: "bzip2-1.0.6", Format: Squashfs})
	if !errdefs.IsAlreadyExists(err) {
		t.Fatalf("error = %v, want already exists", err)
	}
	if !strings.Contains(err.Error(), "bzip2-1.0.6.simg") {
		t.Fatalf("error %q does not name the conflicting path", err)
	}
	if runner.n != 0 {
		t.Fatalf("external builder invoked %d times despite existing image", runner.n)
	}
}

func TestBuildSurfacesExitStatus(t *testing.T) {
	chdir(t, t.TempDir())

	runner := &recordingRunner{err: errors.New("exit status 255")}
	b := &Builder{Run: runner.run}

	err := b.Build(context.Background(), "Singularity.x-1", Target{Stem: "x-1", Format: Squashfs})
	if err == nil {
		t.Fatal("Build succeeded despite runner failure")
	}
	if !errors.Is(err, runner.err) {
		t.Fatalf("error = %v, does not wrap the runner failure", err)
	}
}

func TestTargetFinalPath(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{Squashfs, "R-3.3.1.simg"},
		{Ext3, "R-3.3.1.img"},
		{Sandbox, "R-3.3.1"},
	}

	for _, tt := range tests {
		got := Target{Stem: "R-3.3.1", Format: tt.format}.FinalPath()
		if got != tt.want {
			t.Fatalf("FinalPath(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"squashfs", "ext3", "sandbox"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", name, err)
		}
		if f.String() != name {
			t.Fatalf("ParseFormat(%q).String() = %q", name, f)
		}
	}

	if _, err := ParseFormat("qcow2"); !errdefs.IsInvalidArgument(err) {
		t.Fatalf("ParseFormat(qcow2) error = %v, want invalid argument", err)
	}
}
