package resend

import (
	"fmt"
	"strings"

	"github.com/circadianhq/circadian/internal/server"
	"github.com/resend/resend-go/v2"
)

type ResendNotifier struct {
	ApiKey string
	Email  string
}

func (r *ResendNotifier) SendReminder(anchors []server.AnchorView) error {
	var b strings.Builder
	b.WriteString("<p>Coming up on your circadian schedule:</p><ul>")
	for _, a := range anchors {
		fmt.Fprintf(&b, "<li><strong>%s</strong> %s — %s</li>", a.Time, a.Title, a.Description)
	}
	b.WriteString("</ul>")

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    "reminders@circadian.dev",
		To:      []string{r.Email},
		Subject: "Your next circadian anchors",
		Html:    b.String(),
	}
	_, err := client.Emails.Send(params)
	return err
}
