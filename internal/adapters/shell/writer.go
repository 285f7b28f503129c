package shell

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"

	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// lineWriter buffers subprocess output and forwards complete lines to the
// logger. Partial writes are held until a newline arrives. An optional tee
// writer receives the raw bytes.
type lineWriter struct {
	logger ports.Logger
	level  string
	tee    io.Writer

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tee != nil {
		_, _ = w.tee.Write(p)
	}

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, push it back and wait for more.
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

func (w *lineWriter) emit(line string) {
	if w.level == "error" {
		w.logger.Error(zerr.New(line))
		return
	}
	w.logger.Info(line)
}

// resolveEnvironment merges override entries onto the base "KEY=VALUE"
// environment. PATH overrides are prepended to the inherited PATH rather
// than replacing it.
func resolveEnvironment(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	envMap := make(map[string]string, len(base))
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
				continue
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
