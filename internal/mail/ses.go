// internal/mail/ses.go
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"

	"matchtech-assistant/internal/common/errors"
	"matchtech-assistant/internal/common/logger"
)

// SESAPI is the subset of the SES client used by Mailer.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// Mailer delivers chat transcripts by email through AWS SES.
type Mailer struct {
	api    SESAPI
	from   string
	logger logger.Logger
}

func NewMailer(ctx context.Context, region, from string, log logger.Logger) (*Mailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewMailerWithAPI(ses.NewFromConfig(cfg), from, log), nil
}

// NewMailerWithAPI builds a Mailer over an existing SES API, used by tests.
func NewMailerWithAPI(api SESAPI, from string, log logger.Logger) *Mailer {
	return &Mailer{
		api:  api,
		from: from,
		logger: log.With(map[string]interface{}{
			"component": "mail",
		}),
	}
}

// SendChatPDF sends the rendered chat PDF as an attachment.
func (m *Mailer) SendChatPDF(ctx context.Context, to, title string, pdf []byte) error {
	raw, err := buildRawMessage(m.from, to, title, pdf)
	if err != nil {
		return errors.NewEmailSendFailedError(to, err)
	}

	_, err = m.api.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(m.from),
		Destinations: []string{to},
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		return errors.NewEmailSendFailedError(to, err)
	}

	m.logger.Info("chat transcript emailed", map[string]interface{}{
		"to":    to,
		"title": title,
	})
	return nil
}

// buildRawMessage assembles a multipart/mixed MIME message with a text body
// and the PDF attachment.
func buildRawMessage(from, to, title string, pdf []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: \"MatchTech\" <%s>\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: Chat compartido: %s\r\n", title)
	fmt.Fprintf(&buf, "Message-ID: <%s@matchtech>\r\n", uuid.New().String())
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprint(textPart, "Adjunto el PDF con tu chat.\r\n")

	attachment, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", title+".pdf")},
	})
	if err != nil {
		return nil, err
	}
	encoder := base64.NewEncoder(base64.StdEncoding, attachment)
	if _, err := encoder.Write(pdf); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
