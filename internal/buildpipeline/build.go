package buildpipeline

import (
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultOutputPath is the fixed artifact path when the caller does not
// override it.
const DefaultOutputPath = "output.ll"

// BuildRequest describes a full build: compile plus artifact emission.
type BuildRequest struct {
	CompileRequest

	// OutputPath of the textual IR artifact; DefaultOutputPath when empty.
	OutputPath string
	// Mirror additionally receives the emitted IR (conventionally the
	// diagnostic stream). Nil disables mirroring.
	Mirror io.Writer
	// Cache, when non-nil, short-circuits emission for unchanged sources
	// and stores fresh artifacts. Nil means no state persists.
	Cache *ArtifactCache
}

// BuildResult reports what a build produced.
type BuildResult struct {
	OutputPath string
	CacheHit   bool
	Timings    Timings
	Compile    *CompileResult
}

// Build compiles one program and writes the textual IR artifact. On any
// compile error nothing is written and the artifact, if any existed
// before, must not be considered authoritative.
func Build(req *BuildRequest) (*BuildResult, error) {
	out := req.OutputPath
	if out == "" {
		out = DefaultOutputPath
	}
	res := &BuildResult{OutputPath: out}

	cres, err := Compile(&req.CompileRequest)
	res.Compile = cres
	res.Timings = cres.Timings
	if err != nil {
		return res, err
	}

	start := time.Now()
	irText := ""
	if cached, ok, cerr := lookupCache(req.Cache, cres); cerr != nil {
		return res, cerr
	} else if ok {
		res.CacheHit = true
		irText = cached
	} else {
		irText = cres.Module.String()
		if req.Cache != nil {
			if cerr := req.Cache.Put(cres.File.Hash, cres.File.Path, irText); cerr != nil {
				return res, cerr
			}
		}
	}

	if err := os.WriteFile(out, []byte(irText), 0o644); err != nil {
		res.Timings.Set(StageEmit, time.Since(start))
		return res, fmt.Errorf("writing %s: %w", out, err)
	}
	if req.Mirror != nil {
		fmt.Fprint(req.Mirror, irText)
	}
	res.Timings.Set(StageEmit, time.Since(start))
	return res, nil
}

func lookupCache(cache *ArtifactCache, cres *CompileResult) (string, bool, error) {
	if cache == nil || cres.File == nil {
		return "", false, nil
	}
	return cache.Get(cres.File.Hash)
}
