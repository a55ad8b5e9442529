package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"
)

// EnvVerbose tells an extension that debug logging was requested.
const EnvVerbose = "BTCFOLIO_VERBOSE"

// RunExtension attempts to find and execute an external btcf-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// Global flags are passed to the extension as BTCFOLIO_* environment variables.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "btcf-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logrus.WithField("command", externalCmdName).Debug("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global flags that were set, as environment variables.
func extensionEnv() []string {
	var env []string
	for _, v := range []struct{ key, value string }{
		{EnvConfig, *configFile},
		{EnvCurrency, *currency},
		{EnvReports, *reportsFile},
		{EnvQuotes, *quotesFile},
		{EnvGapPolicy, *gapPolicy},
	} {
		if v.value != "" {
			env = append(env, v.key+"="+v.value)
		}
	}
	return append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
}
