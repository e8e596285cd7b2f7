package lib

import (
	"bytes"
	"context"
	"log"

	"github.com/wneessen/go-mail"
)

func GetSMTPClient(host string, port int, user, pass string) (*mail.Client, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(user), mail.WithPassword(pass))
	}
	c, err := mail.NewClient(host, opts...)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

type Attachment struct {
	Name string
	Data []byte
}

type SendMailInput struct {
	From        string
	FromName    string
	To          []string
	Subject     string
	Body        string
	Html        bool
	Attachments []Attachment
}

func NewMessage(in *SendMailInput) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(in.FromName, in.From); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
		return nil, err
	}
	if err := msg.To(in.To...); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
		return nil, err
	}
	msg.Subject(in.Subject)
	if in.Html {
		msg.SetBodyString(mail.TypeTextHTML, in.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, in.Body)
	}
	for _, a := range in.Attachments {
		if err := msg.AttachReader(a.Name, bytes.NewReader(a.Data)); err != nil {
			log.Printf("Failed to attach %s: %s\n", a.Name, err.Error())
			return nil, err
		}
	}
	return msg, nil
}

// SMTPMailer sends mail through a single SMTP relay.
type SMTPMailer struct {
	client *mail.Client
}

func NewSMTPMailer(host string, port int, user, pass string) (*SMTPMailer, error) {
	c, err := GetSMTPClient(host, port, user, pass)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: c}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, in *SendMailInput) error {
	msg, err := NewMessage(in)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("Error sending mail: %s\n", err.Error())
		return err
	}
	return nil
}
