// Package notifier dispatches desktop notifications through whatever
// mechanism the host platform provides.
package notifier

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

const appName = "focusping"

// runCommand is swapped out in tests.
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// System sends a desktop notification.
type System struct {
	// Program overrides the notification binary on linux. Empty means
	// notify-send.
	Program string
}

// Notify shows a notification with the given title and body. The error
// satisfies IsProgramMissing when the platform's notification binary is
// not installed; callers treat that case as non-retriable.
func (s System) Notify(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		program := s.Program
		if program == "" {
			program = "notify-send"
		}
		return runCommand(program, "--app-name="+appName, title, body)
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, body, title)
		return runCommand("osascript", "-e", script)
	case "windows":
		ps := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = '<toast><visual><binding template="ToastText02"><text id="1">%s</text><text id="2">%s</text></binding></visual></toast>'
$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml($template)
$toast = [Windows.UI.Notifications.ToastNotification]::new($xml)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("%s").Show($toast)
`, title, body, appName)
		return runCommand("powershell", "-Command", ps)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsProgramMissing reports whether err means the notification binary
// itself could not be found, as opposed to it running and failing.
func IsProgramMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
