package buildpipeline_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mica/internal/buildpipeline"
	"mica/internal/diag"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.mi")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileVirtualSuccess(t *testing.T) {
	res, err := buildpipeline.CompileVirtual("main.mi", []byte("2+3*4"), 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if res.Module == nil {
		t.Fatal("no module produced")
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if !res.Timings.Has(buildpipeline.StageParse) || !res.Timings.Has(buildpipeline.StageLower) {
		t.Error("parse and lower stages must be timed")
	}
}

func TestCompileVirtualSyntaxError(t *testing.T) {
	res, err := buildpipeline.CompileVirtual("main.mi", []byte("(2+3"), 0)
	if err == nil {
		t.Fatal("want error, got none")
	}
	if res.Module != nil {
		t.Error("failed compilation must not produce a module")
	}
	if !res.Bag.HasErrors() {
		t.Fatal("no diagnostic recorded")
	}
	if got := res.Bag.Items()[0].Code; got != diag.SynExpectRParen {
		t.Errorf("got code %v, want SynExpectRParen", got)
	}
}

func TestCompileMissingFile(t *testing.T) {
	_, err := buildpipeline.Compile(&buildpipeline.CompileRequest{
		Path: filepath.Join(t.TempDir(), "absent.mi"),
	})
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestBuildWritesArtifactAndMirror(t *testing.T) {
	src := writeSource(t, "if(1){5}else{9}")
	out := filepath.Join(t.TempDir(), "output.ll")
	var mirror bytes.Buffer

	res, err := buildpipeline.Build(&buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{Path: src},
		OutputPath:     out,
		Mirror:         &mirror,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.OutputPath != out {
		t.Errorf("got output path %q, want %q", res.OutputPath, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "define i32 @main()") {
		t.Errorf("artifact missing main definition:\n%s", data)
	}
	if mirror.String() != string(data) {
		t.Error("mirror must receive exactly the artifact text")
	}
	if !res.Timings.Has(buildpipeline.StageEmit) {
		t.Error("emit stage must be timed")
	}
}

func TestBuildFailureWritesNothing(t *testing.T) {
	src := writeSource(t, "if(1){2")
	out := filepath.Join(t.TempDir(), "output.ll")

	_, err := buildpipeline.Build(&buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{Path: src},
		OutputPath:     out,
	})
	if err == nil {
		t.Fatal("want error, got none")
	}
	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Error("failed build must not leave an artifact behind")
	}
}

func TestBuildSemanticFailureWritesNothing(t *testing.T) {
	// An undeclared identifier only fails during lowering, after a clean
	// parse. The artifact must still be withheld.
	src := writeSource(t, "1+ghost")
	out := filepath.Join(t.TempDir(), "output.ll")

	_, err := buildpipeline.Build(&buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{Path: src},
		OutputPath:     out,
	})
	if err == nil {
		t.Fatal("want error, got none")
	}
	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Error("failed build must not leave an artifact behind")
	}
}

func TestBuildDefaultsOutputPath(t *testing.T) {
	src := writeSource(t, "1")
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	res, err := buildpipeline.Build(&buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{Path: src},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.OutputPath != buildpipeline.DefaultOutputPath {
		t.Errorf("got %q, want %q", res.OutputPath, buildpipeline.DefaultOutputPath)
	}
	if _, err := os.Stat(filepath.Join(dir, buildpipeline.DefaultOutputPath)); err != nil {
		t.Errorf("default artifact not written: %v", err)
	}
}

func TestArtifactCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := buildpipeline.OpenArtifactCache("mica-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	key := buildpipeline.Digest{1, 2, 3}
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("empty cache: got hit=%v err=%v", ok, err)
	}
	if err := cache.Put(key, "main.mi", "ret i32 0"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("get after put: hit=%v err=%v", ok, err)
	}
	if got != "ret i32 0" {
		t.Errorf("got %q, want stored IR", got)
	}
	if _, ok, _ := cache.Get(buildpipeline.Digest{9}); ok {
		t.Error("unrelated key must miss")
	}
}

func TestBuildCacheHitOnSecondRun(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := buildpipeline.OpenArtifactCache("mica-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	src := writeSource(t, "2+2")
	outDir := t.TempDir()

	run := func(name string) *buildpipeline.BuildResult {
		res, err := buildpipeline.Build(&buildpipeline.BuildRequest{
			CompileRequest: buildpipeline.CompileRequest{Path: src},
			OutputPath:     filepath.Join(outDir, name),
			Cache:          cache,
		})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return res
	}

	if res := run("first.ll"); res.CacheHit {
		t.Error("first build must miss the cache")
	}
	res := run("second.ll")
	if !res.CacheHit {
		t.Error("second build of unchanged source must hit the cache")
	}

	first, _ := os.ReadFile(filepath.Join(outDir, "first.ll"))
	second, _ := os.ReadFile(filepath.Join(outDir, "second.ll"))
	if !bytes.Equal(first, second) {
		t.Error("cached artifact must match the freshly emitted one")
	}
}

func TestTimingsSum(t *testing.T) {
	res, err := buildpipeline.CompileVirtual("main.mi", []byte("1+1"), 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := res.Timings.Duration(buildpipeline.StageParse) + res.Timings.Duration(buildpipeline.StageLower)
	if got := res.Timings.Sum(buildpipeline.StageParse, buildpipeline.StageLower); got != want {
		t.Errorf("sum: got %v, want %v", got, want)
	}
}
