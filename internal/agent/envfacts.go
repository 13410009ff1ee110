package agent

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const envFactsTimeout = 5 * time.Second

// gatherEnvFacts produces the one-line environment description that
// every prompt carries. uname gives the planner kernel and
// architecture detail; when it is unavailable the Go runtime's view
// stands in.
func gatherEnvFacts(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, envFactsTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "uname", "-a").Output()
	if facts := strings.TrimSpace(string(out)); err == nil && facts != "" {
		return facts
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s/%s (%s)", runtime.GOOS, runtime.GOARCH, hostname)
}
