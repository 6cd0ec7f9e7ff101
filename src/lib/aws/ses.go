package aws

import (
	"bookify/src/lib"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func GetSESClient(ctx context.Context) (*ses.Client, error) {
	if sesClient != nil {
		return sesClient, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil, err
	}
	sesClient = ses.NewFromConfig(cfg)
	return sesClient, nil
}

// NewSendEmailInput maps a mail onto the SES simple email format.
func NewSendEmailInput(input *lib.SendMailInput) *ses.SendEmailInput {
	source := input.From
	if input.FromName != "" {
		source = fmt.Sprintf("%s <%s>", input.FromName, input.From)
	}
	body := &types.Body{}
	content := &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(input.Body)}
	if input.Html {
		body.Html = content
	} else {
		body.Text = content
	}
	out := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: input.To},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(input.Subject)},
			Body:    body,
		},
	}
	if input.ReplyTo != "" {
		out.ReplyToAddresses = []string{input.ReplyTo}
	}
	return out
}

func SESSendMail(ctx context.Context, input *lib.SendMailInput) error {
	c, err := GetSESClient(ctx)
	if err != nil {
		return err
	}
	out, err := c.SendEmail(ctx, NewSendEmailInput(input))
	if err != nil {
		log.Printf("Error sending email: %s\n", err.Error())
		return err
	}
	log.Printf("Sent email with id: %s\n", aws.ToString(out.MessageId))
	return nil
}
