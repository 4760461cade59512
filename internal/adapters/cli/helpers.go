package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// consoleLogger writes structured run logs to stderr, honoring the
// configured format. It implements common.RunLogger.
type consoleLogger struct {
	format  string
	verbose bool
}

func newConsoleLogger(format string, verbose bool) *consoleLogger {
	return &consoleLogger{format: format, verbose: verbose}
}

func (l *consoleLogger) Log(level, message string, fields map[string]interface{}) {
	if level == "DEBUG" && !l.verbose {
		return
	}

	if l.format == "json" {
		entry := map[string]interface{}{
			"ts":    time.Now().UTC().Format(time.RFC3339),
			"level": level,
			"msg":   message,
		}
		for k, v := range fields {
			entry[k] = v
		}
		bytes, err := json.Marshal(entry)
		if err == nil {
			fmt.Fprintln(os.Stderr, string(bytes))
		}
		return
	}

	fmt.Fprintf(os.Stderr, "%s %-5s %s", time.Now().UTC().Format("15:04:05"), level, message)
	for k, v := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", k, v)
	}
	fmt.Fprintln(os.Stderr)
}

// formatMoney renders a cost figure for table output.
func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// formatLiters renders a quantity for table output.
func formatLiters(liters float64) string {
	return fmt.Sprintf("%.0f L", liters)
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
