package aws

import (
	"bytes"
	"context"
	"log"
	"ticketpro/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

func GetSESClient(ctx context.Context) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil, err
	}
	return ses.NewFromConfig(cfg), nil
}

// SESMailer sends the same MIME message the SMTP mailer builds, as a raw
// SES email so attachments survive.
type SESMailer struct {
	client *ses.Client
}

func NewSESMailer(client *ses.Client) *SESMailer {
	return &SESMailer{client: client}
}

func (m *SESMailer) Send(ctx context.Context, in *lib.SendMailInput) error {
	msg, err := lib.NewMessage(in)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return err
	}
	out, err := m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(in.From),
		Destinations: in.To,
		RawMessage:   &types.RawMessage{Data: buf.Bytes()},
	})
	if err != nil {
		log.Printf("Error sending email: %s\n", err.Error())
		return err
	}
	log.Printf("Sent email with id: %s\n", aws.ToString(out.MessageId))
	return nil
}
