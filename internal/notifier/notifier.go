package notifier

import "log"

// Notifier delivers rendered reports and alert digests.
type Notifier interface {
	Send(text string) error
	Name() string
}

// ConsoleNotifier writes messages to the process log. Used when Telegram
// credentials are not configured.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Name() string { return "console" }

func (c *ConsoleNotifier) Send(text string) error {
	log.Printf("[INFO] notification:\n%s", text)
	return nil
}
