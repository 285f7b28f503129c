package progrock_test

import (
	"context"
	"testing"

	"go.trai.ch/extbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/extbuild/internal/core/ports"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx := context.Background()
	vctx, vertex := recorder.Record(ctx, "driver")

	// The vertex is attached to the context for the runner to find.
	if ports.VertexFromContext(vctx) != vertex {
		t.Error("expected the vertex to be carried by the returned context")
	}

	if _, err := vertex.Stdout().Write([]byte("compiling driver.c\n")); err != nil {
		t.Errorf("failed to write to stdout: %v", err)
	}
	if _, err := vertex.Stderr().Write([]byte("warning: unused variable\n")); err != nil {
		t.Errorf("failed to write to stderr: %v", err)
	}

	vertex.Complete(nil)

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}

func TestRecorder_CachedVertex(t *testing.T) {
	recorder := progrock.New()

	_, vertex := recorder.Record(context.Background(), "driver")
	vertex.Cached()

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}
