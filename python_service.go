package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrPythonMissing reports that no usable Python interpreter was found.
var ErrPythonMissing = errors.New("python interpreter not found")

// PythonService locates and inspects the Python interpreter used to run the
// bot script. A bundled runtime beside the executable wins over PATH.
type PythonService struct {
	baseDir string
	logger  func(string)
}

// NewPythonService creates a new PythonService.
func NewPythonService(logger func(string)) *PythonService {
	return &PythonService{logger: logger}
}

// Name returns the service name.
func (s *PythonService) Name() string {
	return "python"
}

// Initialize logs which interpreter the launcher would use, if any.
func (s *PythonService) Initialize(ctx context.Context) error {
	path, err := s.FindInterpreter()
	if err != nil {
		s.log("No Python interpreter found yet (expected before first provisioning)")
		return nil
	}
	s.log("Python interpreter: " + path + " (" + s.Version(path) + ")")
	return nil
}

// Shutdown closes the service (no-op).
func (s *PythonService) Shutdown() error {
	return nil
}

// SetBaseDir overrides the application directory (mainly for tests).
func (s *PythonService) SetBaseDir(dir string) {
	s.baseDir = dir
}

func (s *PythonService) appDir() (string, error) {
	if s.baseDir != "" {
		return s.baseDir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// FindInterpreter returns the first usable Python interpreter. The bundled
// runtime installed by the provisioner is preferred; PATH is the fallback.
func (s *PythonService) FindInterpreter() (string, error) {
	dir, err := s.appDir()
	if err != nil {
		return "", WrapError("python", "FindInterpreter", err)
	}

	var candidates []string
	if runtime.GOOS == "windows" {
		candidates = []string{
			filepath.Join(dir, "python", "pythonw.exe"),
			filepath.Join(dir, "python", "python.exe"),
			"pythonw",
			"python",
		}
	} else {
		candidates = []string{
			filepath.Join(dir, "python", "bin", "python3"),
			filepath.Join(dir, "python", "bin", "python"),
			"python3",
			"python",
		}
	}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			// Resolve symlinks so logs show the real runtime.
			if real, err := filepath.EvalSymlinks(path); err == nil {
				path = real
			}
			return path, nil
		}
	}
	return "", WrapError("python", "FindInterpreter", ErrPythonMissing)
}

// Version runs python --version. Returns "Unknown" on any failure.
func (s *PythonService) Version(pythonPath string) string {
	cmd := exec.Command(pythonPath, "--version")
	cmd.SysProcAttr = hiddenProcAttr()
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "Unknown"
	}
	return strings.TrimSpace(string(out))
}

// CheckPackage reports whether the interpreter can import packageName.
// Informational only: the launcher logs the result after provisioning but
// does not gate the bot launch on it.
func (s *PythonService) CheckPackage(pythonPath, packageName string) bool {
	cmd := exec.Command(pythonPath, "-c", "import "+packageName)
	cmd.SysProcAttr = hiddenProcAttr()
	err := cmd.Run()
	return err == nil
}

func (s *PythonService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}
