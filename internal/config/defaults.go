package config

import "strings"

const termsBody = `## Terms of use

By continuing you agree to the following terms.

1. The software is provided as is, without warranty of any kind.
2. You are responsible for the dialogs you open and the buttons you press.
3. Closing a dialog with **escape** counts as neither accepting nor declining.
4. Clicking outside the dialog closes it with the ` + "`close`" + ` action.
5. Long content scrolls with the arrow keys, page keys or the mouse wheel.
6. The dialog measures itself again whenever the window is resized.
7. Buttons stack vertically when they no longer fit on one row.
8. While a dialog is open the background does not scroll.
9. Focus stays inside the dialog until it closes.
10. These terms may change without notice.

Thank you for reading this far.`

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Dialogs: map[string]DialogSpec{
			"confirm": {
				Title: "Discard changes?",
				Body:  "Your unsaved edits will be lost. This cannot be undone.",
				Key:   "c",
				Buttons: []ButtonSpec{
					{Label: "Cancel", Action: "cancel"},
					{Label: "Discard", Action: "discard"},
				},
			},
			"terms": {
				Title:    "Terms of use",
				Body:     termsBody,
				Markdown: true,
				Key:      "t",
				Buttons: []ButtonSpec{
					{Label: "Decline", Action: "decline"},
					{Label: "Accept", Action: "accept"},
				},
			},
			"choices": {
				Title: "Export format",
				Body:  "Choose how the report should be exported.",
				Key:   "e",
				Buttons: []ButtonSpec{
					{Label: "Portable Document Format", Action: "pdf"},
					{Label: "Comma Separated Values", Action: "csv"},
					{Label: "Plain text", Action: "txt"},
					{Label: "Cancel", Action: "cancel"},
				},
			},
			"about": {
				Title: "About dialogctl",
				Body: strings.Join([]string{
					"dialogctl drives modal dialogs in the terminal.",
					"Press tab to move between buttons and enter to press one.",
				}, " "),
				Key: "a",
				Buttons: []ButtonSpec{
					{Label: "Close", Action: "close"},
					{Label: "Website", Action: "website", URL: "https://github.com/rfhold/dialogctl"},
				},
			},
		},
	}
}
