package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// ExtensionPrefix prefixes the name of external commands: "waci foo" runs
// the "waci-foo" binary found in PATH.
const ExtensionPrefix = "waci-"

// RunExtension attempts to find and execute an external waci-<subcommand> binary.
// The resolved configuration is passed as WACI_* environment variables, so
// that the extension reads the same input files.
//
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.WithField("extension", name).Debugf("No extension found in PATH: %v", err)
		return false, 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// later entries win over the inherited environment
	cmd.Env = append(os.Environ(), cfg.Environ()...)

	log.WithField("extension", lp).Debug("Running extension")
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
