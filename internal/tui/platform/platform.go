package platform

import (
	"bytes"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

var clipboardCommands = [][]string{
	{"pbcopy"},
	{"xclip", "-selection", "clipboard"},
	{"wl-copy"},
}

// ValidateThreadURL accepts absolute http(s) URLs only.
func ValidateThreadURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("thread has no URL")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL host")
	}
	return trimmed, nil
}

func OpenURLInBrowser(url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Run()
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// CopyURLToClipboard writes url to the system clipboard, falling back to the
// first clipboard command found on PATH.
func CopyURLToClipboard(url string) error {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(url); err == nil {
			return nil
		}
	}

	c, err := selectClipboardCommand(exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(c[0], c[1:]...)
	cmd.Stdin = bytes.NewBufferString(url)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("copy with %s: %w", c[0], err)
	}
	return nil
}

func selectClipboardCommand(lookup func(string) (string, error)) ([]string, error) {
	for _, c := range clipboardCommands {
		if _, err := lookup(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no clipboard command available")
}
