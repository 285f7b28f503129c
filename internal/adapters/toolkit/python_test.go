package toolkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const introspectOutput = `{"ext_suffix": ".cpython-312-x86_64-linux-gnu.so", "include": "/usr/include/python3.12", "installed_base": "/usr"}
`

func TestPythonInfo_Introspection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvPython, "")

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd *domain.Command) ([]byte, error) {
			require.Equal(t, "python3", cmd.Path)
			require.Len(t, cmd.Args, 2)
			require.Equal(t, "-c", cmd.Args[0])
			return []byte(introspectOutput), nil
		}).
		Times(1)

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	info, err := locator.pythonInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "python3", info.Interpreter)
	require.Equal(t, ".cpython-312-x86_64-linux-gnu.so", info.ExtSuffix)
	require.Equal(t, "/usr/include/python3.12", info.IncludeDir)

	// Memoized.
	info2, err := locator.pythonInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, info, info2)
}

func TestPythonInfo_InterpreterOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvPython, "/venv/bin/python")

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd *domain.Command) ([]byte, error) {
			require.Equal(t, "/venv/bin/python", cmd.Path)
			return []byte(introspectOutput), nil
		}).
		Times(1)

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	info, err := locator.pythonInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/venv/bin/python", info.Interpreter)
}

func TestPythonInfo_InterpreterMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvPython, "")

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("executable file not found")).
		Times(1)

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	_, err := locator.pythonInfo(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "introspect")
}

func TestPythonInfo_FailureNotMemoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvPython, "")

	mockRunner := mocks.NewMockRunner(ctrl)
	gomock.InOrder(
		mockRunner.EXPECT().
			Output(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("executable file not found")),
		mockRunner.EXPECT().
			Output(gomock.Any(), gomock.Any()).
			Return([]byte(introspectOutput), nil),
	)

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	_, err := locator.pythonInfo(context.Background())
	require.Error(t, err)

	// A failed probe is retried, not cached.
	info, err := locator.pythonInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, ".cpython-312-x86_64-linux-gnu.so", info.ExtSuffix)
}

func TestLocate_CUDA(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvLibcudaPath, "/cuda/lib64")
	t.Setenv(EnvCudaIncludePath, "/cuda/include")
	t.Setenv(EnvPython, "")

	mockRunner := mocks.NewMockRunner(ctrl)
	// Only the python introspection runs; libcuda discovery is satisfied by
	// the env override.
	mockRunner.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		Return([]byte(introspectOutput), nil).
		Times(1)

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	tc, err := locator.Locate(context.Background(), domain.BackendCUDA)
	require.NoError(t, err)
	require.Equal(t, domain.BackendCUDA, tc.Backend)
	require.Equal(t, []string{"/cuda/lib64"}, tc.LibraryDirs)
	require.Equal(t, []string{"/cuda/include", "/usr/include/python3.12"}, tc.IncludeDirs)
	require.Equal(t, []string{"cuda"}, tc.Libraries)
	require.Equal(t, ".cpython-312-x86_64-linux-gnu.so", tc.ExtSuffix)
	require.Equal(t, "python3", tc.Python)
}

func TestLocate_ROCm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvRocmPath, "/custom/rocm")
	t.Setenv(EnvPython, "")

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		Return([]byte(introspectOutput), nil).
		Times(1)

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	tc, err := locator.Locate(context.Background(), domain.BackendROCm)
	require.NoError(t, err)
	require.Equal(t, []string{"/custom/rocm/lib"}, tc.LibraryDirs)
	require.Equal(t, []string{"/custom/rocm/include", "/usr/include/python3.12"}, tc.IncludeDirs)
	require.Equal(t, []string{"amdhip64"}, tc.Libraries)
}

func TestLocate_UnknownBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Setenv(EnvPython, "")

	mockRunner := mocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Output(gomock.Any(), gomock.Any()).
		Return([]byte(introspectOutput), nil).
		AnyTimes()

	locator := NewLocator(mockRunner, mocks.NewMockLogger(ctrl))

	_, err := locator.Locate(context.Background(), domain.Backend("metal"))
	require.ErrorIs(t, err, domain.ErrUnknownBackend)
}
