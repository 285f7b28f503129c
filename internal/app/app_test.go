package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/adapters/telemetry"
	"go.trai.ch/extbuild/internal/app"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.trai.ch/extbuild/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader   *mocks.MockConfigLoader
	locator  *mocks.MockToolchainLocator
	detector *mocks.MockCompilerDetector
	runner   *mocks.MockRunner
	resolver *mocks.MockSourceResolver
	hasher   *mocks.MockHasher
	store    *mocks.MockBuildInfoStore
}

func newTestApp(ctrl *gomock.Controller) (*app.App, *appMocks) {
	m := &appMocks{
		loader:   mocks.NewMockConfigLoader(ctrl),
		locator:  mocks.NewMockToolchainLocator(ctrl),
		detector: mocks.NewMockCompilerDetector(ctrl),
		runner:   mocks.NewMockRunner(ctrl),
		resolver: mocks.NewMockSourceResolver(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		store:    mocks.NewMockBuildInfoStore(ctrl),
	}
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	b := builder.NewBuilder(
		m.locator,
		m.detector,
		m.runner,
		m.resolver,
		m.hasher,
		m.store,
		telemetry.NewNoOp(),
		logger,
	)
	a := app.New(m.loader, b, m.locator, m.detector, m.store, logger)
	return a, m
}

// expectBuild arranges a successful compile for the given job: the cache
// misses and the mocked compiler run drops the artifact on disk.
func (m *appMocks) expectBuild(t *testing.T, job *domain.Job) {
	t.Helper()
	tc := &domain.Toolchain{Backend: job.Backend, Libraries: []string{"cuda"}, Python: "python3", ExtSuffix: ".so"}
	out := filepath.Join(filepath.Dir(job.Source), job.Name+".so")

	m.resolver.EXPECT().ResolveSource(job.Source, ".").Return(job.Source, nil)
	m.locator.EXPECT().Locate(gomock.Any(), job.Backend).Return(tc, nil)
	m.detector.EXPECT().Detect(gomock.Any()).Return("gcc", nil)
	m.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any(), "gcc").Return("h-"+job.Name, nil)
	m.store.EXPECT().Get(job.Name).Return(nil, nil)
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *domain.Command) error {
		return os.WriteFile(out, []byte("obj"), 0o644)
	})
	m.store.EXPECT().Put(gomock.Any()).Return(nil)
}

func manifestWithJobs(t *testing.T, names ...string) *domain.Manifest {
	t.Helper()
	dir := t.TempDir()
	m := &domain.Manifest{Version: "1", Jobs: map[string]*domain.Job{}}
	for _, name := range names {
		src := filepath.Join(dir, name+".c")
		require.NoError(t, os.WriteFile(src, []byte("int x;"), 0o644))
		job := &domain.Job{Name: name, Source: src, Backend: domain.BackendCUDA}
		job.Normalize()
		m.Jobs[name] = job
	}
	return m
}

func TestApp_Run_NamedJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)
	manifest := manifestWithJobs(t, "alpha", "beta")

	m.loader.EXPECT().Load("extbuild.yaml").Return(manifest, nil)
	m.expectBuild(t, manifest.Jobs["alpha"])

	err := a.Run(context.Background(), "extbuild.yaml", []string{"alpha"})
	require.NoError(t, err)
}

func TestApp_Run_AllJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)
	manifest := manifestWithJobs(t, "alpha", "beta")

	m.loader.EXPECT().Load("extbuild.yaml").Return(manifest, nil)
	m.expectBuild(t, manifest.Jobs["alpha"])
	m.expectBuild(t, manifest.Jobs["beta"])

	err := a.Run(context.Background(), "extbuild.yaml", nil)
	require.NoError(t, err)
}

func TestApp_Run_UnknownJobDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)
	manifest := manifestWithJobs(t, "alpha")

	m.loader.EXPECT().Load("extbuild.yaml").Return(manifest, nil)
	m.expectBuild(t, manifest.Jobs["alpha"])

	err := a.Run(context.Background(), "extbuild.yaml", []string{"missing", "alpha"})
	require.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestApp_Run_ConfigLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)

	m.loader.EXPECT().Load("extbuild.yaml").Return(nil, errors.New("no such file"))

	err := a.Run(context.Background(), "extbuild.yaml", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_BuildFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)

	dir := t.TempDir()
	src := filepath.Join(dir, "kernel.c")
	require.NoError(t, os.WriteFile(src, []byte("int x;"), 0o644))
	job := &domain.Job{Name: "kernel", Source: src, Backend: domain.BackendCUDA}
	m.expectBuild(t, job)

	artifact, err := a.BuildFile(context.Background(), job)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "kernel.so"), artifact)
}

func TestApp_BuildFile_MissingName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, _ := newTestApp(ctrl)

	_, err := a.BuildFile(context.Background(), &domain.Job{Source: "kernel.c"})
	require.Error(t, err)
}

func TestApp_Probe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)

	m.detector.EXPECT().Detect(gomock.Any()).Return("gcc", nil)
	m.locator.EXPECT().Locate(gomock.Any(), domain.BackendCUDA).Return(&domain.Toolchain{
		Backend:     domain.BackendCUDA,
		IncludeDirs: []string{"/usr/local/cuda/include"},
		LibraryDirs: []string{"/usr/lib/x86_64-linux-gnu"},
		Python:      "python3",
		ExtSuffix:   ".so",
	}, nil)
	m.locator.EXPECT().Locate(gomock.Any(), domain.BackendROCm).
		Return(nil, errors.New("hip runtime not found"))

	var buf bytes.Buffer
	require.NoError(t, a.Probe(context.Background(), &buf))

	out := buf.String()
	require.Contains(t, out, "compiler: gcc")
	require.Contains(t, out, "/usr/local/cuda/include")
	require.Contains(t, out, "rocm: unavailable")
}

func TestApp_Clean(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, m := newTestApp(ctrl)

	m.store.EXPECT().Clear().Return(nil)
	require.NoError(t, a.Clean())
}
