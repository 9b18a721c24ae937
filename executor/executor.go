// Package executor provides script execution functionality
package executor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"git.asdf.cafe/abs3nt/simpledesktop/errors"
)

// ScriptExecutor runs a user hook after a wallpaper has been applied
type ScriptExecutor struct {
	logger *slog.Logger
}

// NewScriptExecutor creates a new script executor
func NewScriptExecutor(logger *slog.Logger) *ScriptExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptExecutor{
		logger: logger,
	}
}

// Execute runs a script with the given image path as its only argument
func (s *ScriptExecutor) Execute(scriptPath, imagePath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return errors.Configuration("run hook", errors.NewValidationError("script", scriptPath, "file does not exist"))
	}

	s.logger.Info("Executing script", "script", scriptPath, "image", imagePath)

	cmd := exec.Command(scriptPath, imagePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		s.logger.Error("Script execution failed", "error", err, "script", scriptPath)
		return errors.Platform("run hook", fmt.Errorf("%w: %v", errors.ErrScriptExecution, err))
	}

	s.logger.Debug("Script executed successfully", "script", scriptPath)
	return nil
}
