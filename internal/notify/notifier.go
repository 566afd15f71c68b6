// Package notify sends best-effort order confirmations over SES email and SNS
// SMS. Failures are logged and reported to the caller but never block the
// conversation.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"whatsapp-orderbot/internal/common/config"
	stderrors "whatsapp-orderbot/internal/common/errors"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/models"
)

// Interfaces over the AWS clients so tests can substitute mocks.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	cfg       config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func New(cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithClients(cfg, log, ses.NewFromConfig(awsCfg), sns.NewFromConfig(awsCfg)), nil
}

// NewWithClients wires explicit SES/SNS clients, used by tests.
func NewWithClients(cfg config.NotificationConfig, log logger.Logger, sesClient SESService, snsClient SNSService) *Notifier {
	return &Notifier{
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// SendOrderConfirmation emails the confirmation when an address is known and
// falls back to SMS at the sender's WhatsApp number. Returns a StandardError
// when every enabled channel failed.
func (n *Notifier) SendOrderConfirmation(ctx context.Context, order *models.Order, email string) error {
	notificationID := uuid.New().String()
	subject, body := confirmationMessage(order)

	emailSent := false
	smsSent := false

	if n.cfg.Email.Enabled && email != "" {
		if err := n.sendEmail(ctx, email, subject, body); err != nil {
			n.logger.WithError(err).Error("confirmation email send failed", map[string]interface{}{
				"notificationId": notificationID,
				"orderId":        order.OrderID,
			})
		} else {
			emailSent = true
		}
	}

	if n.cfg.SMS.Enabled && !emailSent && order.CustomerPhone != "" {
		if err := n.sendSMS(ctx, order.CustomerPhone, body); err != nil {
			n.logger.WithError(err).Error("confirmation SMS send failed", map[string]interface{}{
				"notificationId": notificationID,
				"orderId":        order.OrderID,
			})
		} else {
			smsSent = true
		}
	}

	channelEnabled := (n.cfg.Email.Enabled && email != "") || (n.cfg.SMS.Enabled && order.CustomerPhone != "")
	if channelEnabled && !emailSent && !smsSent {
		return stderrors.NewNotifySendFailedError("ses/sns", fmt.Errorf("all enabled channels failed for order %s", order.OrderID))
	}

	n.logger.Info("order confirmation dispatched", map[string]interface{}{
		"notificationId": notificationID,
		"orderId":        order.OrderID,
		"emailSent":      emailSent,
		"smsSent":        smsSent,
	})
	return nil
}

func confirmationMessage(order *models.Order) (string, string) {
	subject := fmt.Sprintf("Order %s confirmed", order.OrderID)
	body := fmt.Sprintf(
		"Your order %s (%s x%d) has been received and is being processed. Estimated delivery: 2-3 business days.",
		order.OrderID, order.Product, order.Quantity,
	)
	return subject, body
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, to, message string) error {
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
