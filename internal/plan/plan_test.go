package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
)

// Writes a plan file into a temp dir and returns its path.
func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePlan(t, `
- name: R
  version: 3.3.1
  toolchain:
    name: intel
    version: 2017a
  osdependencies:
    - libX11-devel
    - libXt-devel
- name: zlib
  version: 1.2.8
`)

	plan, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("len(plan) = %d, want 2", len(plan))
	}

	target := plan.Target()
	if target.Name != "R" || target.Version != "3.3.1" {
		t.Fatalf("target = %+v, want R 3.3.1", target)
	}
	if target.Toolchain.Name != "intel" || target.Toolchain.Version != "2017a" {
		t.Fatalf("toolchain = %+v, want intel 2017a", target.Toolchain)
	}
	if !target.HasToolchain() {
		t.Fatal("HasToolchain() = false for intel toolchain")
	}
	if len(target.OSDependencies) != 2 {
		t.Fatalf("len(osdependencies) = %d, want 2", len(target.OSDependencies))
	}
	if target.OSDependencies[0].Names[0] != "libX11-devel" {
		t.Fatalf("osdependencies[0] = %+v, want libX11-devel", target.OSDependencies[0])
	}
}

func TestLoadNestedOSDependencies(t *testing.T) {
	path := writePlan(t, `
- name: OpenMPI
  version: 2.0.2
  toolchain:
    name: GCC
    version: 6.3.0
  osdependencies:
    - [libibverbs-dev, libibverbs-devel, rdma-core-devel]
`)

	plan, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	deps := plan.Target().OSDependencies
	if len(deps) != 1 {
		t.Fatalf("len(osdependencies) = %d, want 1", len(deps))
	}
	want := []string{"libibverbs-dev", "libibverbs-devel", "rdma-core-devel"}
	if len(deps[0].Names) != len(want) {
		t.Fatalf("alternatives = %v, want %v", deps[0].Names, want)
	}
	for i := range want {
		if deps[0].Names[i] != want[i] {
			t.Fatalf("alternatives[%d] = %q, want %q", i, deps[0].Names[i], want[i])
		}
	}
}

func TestLoadNormalizesMissingToolchain(t *testing.T) {
	path := writePlan(t, `
- name: bzip2
  version: 1.0.6
`)

	plan, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	target := plan.Target()
	if target.Toolchain.Name != NoToolchain {
		t.Fatalf("toolchain name = %q, want %q", target.Toolchain.Name, NoToolchain)
	}
	if target.HasToolchain() {
		t.Fatal("HasToolchain() = true for missing toolchain")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errdefs.IsNotFound(err) {
			t.Fatalf("error = %v, want not found", err)
		}
	})

	t.Run("empty plan", func(t *testing.T) {
		_, err := Load(writePlan(t, "[]\n"))
		if !errdefs.IsInvalidArgument(err) {
			t.Fatalf("error = %v, want invalid argument", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writePlan(t, "{not: [valid"))
		if !errdefs.IsInvalidArgument(err) {
			t.Fatalf("error = %v, want invalid argument", err)
		}
	})

	t.Run("bad os dependency shape", func(t *testing.T) {
		_, err := Load(writePlan(t, `
- name: x
  version: "1"
  osdependencies:
    - pkg: nested-map
`))
		if err == nil {
			t.Fatal("Load succeeded, want error for mapping os dependency")
		}
	})
}
