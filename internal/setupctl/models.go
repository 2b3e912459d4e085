package setupctl

import (
	"context"
	"fmt"
	"time"

	"checkctl/internal/daemonapi"
)

// pullModel fetches a model into the daemon's local store. The underlying
// pull is idempotent and at-least-once, so it is attempted even when the
// model may already be present. Failure is downgraded to a warning: the pull
// is the most network-fragile, highest-latency step of provisioning and must
// not sink an otherwise successful run.
func pullModel(name string) error {
	info("pulling model %s (this can take a while)...", name)
	if err := fnRunPull(name); err != nil {
		warn("model pull failed: %v", err)
		warn("retry manually with: ollama pull %s", name)
		return nil
	}
	info("model %s is available", name)
	return nil
}

func runOllamaPull(name string) error {
	return runCmdStreaming(context.Background(), "ollama", "pull", name)
}

// listModels prints the models present in the daemon's local store. Presence
// is always queried live from the daemon, never cached.
func listModels(baseURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tags, err := daemonapi.NewClient(baseURL).Tags(ctx)
	if err != nil {
		return fmt.Errorf("could not reach the daemon at %s: %v (start it with: checkctl start)", baseURL, err)
	}
	if len(tags.Models) == 0 {
		info("no models installed; pull one with: checkctl pull-model NAME")
		return nil
	}
	for _, m := range tags.Models {
		fmt.Printf("%-48s %10s  %s\n", m.Name, formatSize(m.Size), m.ModifiedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func formatSize(bytes int64) string {
	const (
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
