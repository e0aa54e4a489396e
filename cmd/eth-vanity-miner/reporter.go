package main

import (
	"fmt"
	"os"
	"time"

	"github.com/screa/eth-vanity-miner/internal/config"
	logpkg "github.com/screa/eth-vanity-miner/internal/logger"
	"github.com/screa/eth-vanity-miner/pkg/types"
)

// logReporter renders miner progress and the final result through the
// logger. The miner emits snapshots at its own minimum cadence; this layer
// thins them further to the user-facing log interval.
type logReporter struct {
	logger   *logpkg.Logger
	interval time.Duration
	lastLog  time.Time
}

func newLogReporter(l *logpkg.Logger, cfg *config.Config) *logReporter {
	return &logReporter{
		logger:   l,
		interval: time.Duration(cfg.LogInterval) * time.Second,
	}
}

func (r *logReporter) OnProgress(speed float64, scanned uint64, probability float64) {
	now := time.Now()
	if now.Sub(r.lastLog) < r.interval {
		return
	}
	r.lastLog = now
	r.logger.Printf("Progress: %s addresses, %s, %.2f%% chance a match was due",
		formatNumber(scanned), formatHashRate(speed), probability*100)
}

func (r *logReporter) OnFound(address, privateKey string, elapsed time.Duration, totalScanned uint64) {
	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(totalScanned) / elapsed.Seconds()
	}
	r.logger.Printf("🎉 Found match!")
	r.logger.Printf("Address: %s", address)
	r.logger.Printf("Private key: %s", privateKey)
	r.logger.Printf("Attempts: %s", formatNumber(totalScanned))
	r.logger.Printf("Duration: %s", formatDuration(elapsed))
	r.logger.Printf("Rate: %s", formatHashRate(rate))
	r.logger.Printf("⚠ Keep your private key secret!")
}

// saveResult writes the found keypair to a file readable only by the owner.
func saveResult(path string, result *types.Result) error {
	content := fmt.Sprintf(`Ethereum Vanity Address
=======================

Address:     %s
Private Key: %s

Statistics:
  Time:     %s
  Attempts: %s

Generated: %s

⚠️ WARNING: Keep this private key secret and secure!
`, result.Match.Address, result.Match.PrivateKey,
		formatDuration(result.Elapsed), formatNumber(result.TotalAttempts),
		time.Now().Format(time.RFC3339))

	return os.WriteFile(path, []byte(content), 0600)
}

// formatHashRate formats a rate with K/M magnitude suffixes
func formatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM addr/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK addr/s", rate/1000)
	}
	return fmt.Sprintf("%.0f addr/s", rate)
}

// formatNumber adds commas to large numbers
func formatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// formatFloat renders a difficulty figure without scientific notation for
// small values, falling back to %g for the astronomically large ones.
func formatFloat(f float64) string {
	if f < 1e15 {
		return formatNumber(uint64(f))
	}
	return fmt.Sprintf("%g", f)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
