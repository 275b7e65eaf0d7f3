package agentcore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultWorkingDir = "/workspace"

// CodeResult is the outcome of a sandboxed code execution.
type CodeResult struct {
	Output       string   `json:"output"`
	Error        string   `json:"error,omitempty"`
	FilesCreated []string `json:"files_created"`
	ExitCode     int      `json:"exit_code"`
}

// ShellResult is the outcome of a sandboxed shell command.
type ShellResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// CodeInterpreter runs code and shell commands in isolated AgentCore
// sandboxes and moves files in and out of them via S3.
type CodeInterpreter struct {
	cfg    *Config
	logger *zap.Logger
}

func NewCodeInterpreter(cfg *Config, logger *zap.Logger) (*CodeInterpreter, error) {
	if !cfg.CodeInterpreterEnabled {
		return nil, fmt.Errorf("code interpreter: %w", ErrServiceDisabled)
	}
	if err := cfg.requireCredentials("Code Interpreter"); err != nil {
		return nil, err
	}
	logger.Info("initializing agentcore code interpreter adapter",
		zap.String("environment", string(cfg.Environment)))
	return &CodeInterpreter{cfg: cfg, logger: logger}, nil
}

// ExecuteCode runs a snippet in the sandbox. A zero timeout falls back
// to the configured default.
func (ci *CodeInterpreter) ExecuteCode(ctx context.Context, code, language string, files []string, timeout time.Duration) (*CodeResult, error) {
	if code == "" {
		return nil, errors.New("code interpreter: code is required")
	}
	if language == "" {
		return nil, errors.New("code interpreter: language is required")
	}
	if timeout <= 0 {
		timeout = time.Duration(ci.cfg.CodeInterpreterTimeoutSeconds) * time.Second
	}

	ci.logger.Info("executing code",
		zap.String("language", language),
		zap.Duration("timeout", timeout),
		zap.Int("files", len(files)),
	)
	// TODO: run via the AgentCore Code Interpreter API with the
	// configured memory limit.
	return &CodeResult{
		Output:       "code execution pending AgentCore integration (placeholder response)",
		FilesCreated: []string{},
		ExitCode:     0,
	}, nil
}

// ExecuteShell runs a shell command in the sandbox working directory.
func (ci *CodeInterpreter) ExecuteShell(ctx context.Context, command, workingDir string, timeout time.Duration) (*ShellResult, error) {
	if command == "" {
		return nil, errors.New("code interpreter: command is required")
	}
	if workingDir == "" {
		workingDir = defaultWorkingDir
	}
	if timeout <= 0 {
		timeout = time.Duration(ci.cfg.CodeInterpreterTimeoutSeconds) * time.Second
	}

	ci.logger.Info("executing shell command",
		zap.String("working_dir", workingDir),
		zap.Duration("timeout", timeout),
	)
	// TODO: run via the AgentCore Code Interpreter API.
	return &ShellResult{
		Stdout:   "shell execution pending AgentCore integration (placeholder response)",
		ExitCode: 0,
	}, nil
}

// UploadFile makes a file available inside the sandbox and returns its
// path there.
func (ci *CodeInterpreter) UploadFile(ctx context.Context, filePath string, content []byte) (string, error) {
	if filePath == "" {
		return "", errors.New("code interpreter: file path is required")
	}

	// TODO: put the object under <prefix>/files/ in the configured S3
	// bucket and mount it into the sandbox.
	ci.logger.Info("uploaded file",
		zap.String("path", filePath),
		zap.Int("bytes", len(content)),
		zap.String("bucket", ci.cfg.S3BucketName),
	)
	return filePath, nil
}

// DownloadFile reads a file out of the sandbox.
func (ci *CodeInterpreter) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, errors.New("code interpreter: file path is required")
	}
	ci.logger.Info("downloading file", zap.String("path", filePath))
	// TODO: get the object from the configured S3 bucket.
	return []byte{}, nil
}

// ListFiles lists the files under a sandbox directory.
func (ci *CodeInterpreter) ListFiles(ctx context.Context, directory string) ([]string, error) {
	if directory == "" {
		directory = defaultWorkingDir
	}
	ci.logger.Info("listing files", zap.String("directory", directory))
	// TODO: list via the AgentCore Code Interpreter API.
	return []string{}, nil
}
