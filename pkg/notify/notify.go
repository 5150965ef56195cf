package notify

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Desk addresses. CUS is CC'd on every message.
const (
	CUS    = "cus@cfa.harvard.edu"
	ARCOPS = "arcops@cfa.harvard.edu"
	MP     = "mp@cfa.harvard.edu"
	HRC    = "hrcdude@cfa.harvard.edu"
	ACIS   = "acisdude@cfa.harvard.edu"
)

// Message is a plain-text mail message.
type Message struct {
	To      []string
	CC      []string
	From    string
	Subject string
	Body    string
}

// NewMessage builds a message with CUS prepended to the CC list.
func NewMessage(subject, body string, to []string, cc ...string) *Message {
	return &Message{
		To:      to,
		CC:      append([]string{CUS}, cc...),
		Subject: subject,
		Body:    body,
	}
}

// Bytes renders the message with headers for sendmail -t.
func (m *Message) Bytes() []byte {
	var b strings.Builder
	b.WriteString("To: " + strings.Join(m.To, ", ") + "\n")
	if len(m.CC) > 0 {
		b.WriteString("CC: " + strings.Join(m.CC, ", ") + "\n")
	}
	if m.From != "" {
		b.WriteString("From: " + m.From + "\n")
	}
	b.WriteString("Subject: " + m.Subject + "\n")
	b.WriteString("\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

// Notifier delivers messages by piping them to sendmail. With TestMode set
// messages are written to Out instead.
type Notifier struct {
	SendmailPath string
	TestMode     bool
	Admins       []string

	// Out receives rendered messages in test mode. Defaults to stdout.
	Out io.Writer
}

// NewNotifier returns a notifier delivering through the given sendmail
// binary.
func NewNotifier(sendmailPath string, testMode bool, admins []string) *Notifier {
	return &Notifier{
		SendmailPath: sendmailPath,
		TestMode:     testMode,
		Admins:       admins,
		Out:          os.Stdout,
	}
}

// Send delivers one message, or all of them.
func (n *Notifier) Send(messages ...*Message) error {
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		if err := n.send(msg); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) send(msg *Message) error {
	if n.TestMode {
		_, err := n.Out.Write(append(msg.Bytes(), '\n'))
		return err
	}

	cmd := exec.Command(n.SendmailPath, "-t", "-oi")
	cmd.Stdin = strings.NewReader(string(msg.Bytes()))
	if out, err := cmd.CombinedOutput(); err != nil {
		log.Printf("sendmail failed: %v: %s", err, out)
		return fmt.Errorf("sendmail: %w", err)
	}
	return nil
}

// SendError mails an error report to the configured admins. Delivery
// problems are logged and swallowed so an error report never cascades.
func (n *Notifier) SendError(username, detail string) {
	if len(n.Admins) == 0 {
		return
	}
	msg := &Message{
		To:      n.Admins,
		From:    "UsintErrorHandler",
		Subject: fmt.Sprintf("Usint Error-[%s]", time.Now().Format(time.ANSIC)),
		Body:    fmt.Sprintf("User: %s\n\n%s\n", username, detail),
	}
	if err := n.send(msg); err != nil {
		log.Printf("error report delivery failed: %v", err)
	}
}
