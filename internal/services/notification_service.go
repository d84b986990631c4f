package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/models"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/telemetry"
	"github.com/princedabre18s/apartment-maintenance-system-nerice/internal/utils"
)

// Notifier delivers best-effort messages after a lifecycle change commits.
// Implementations must not fail the caller.
type Notifier interface {
	StaffAssigned(ctx context.Context, staff *models.Staff, req *models.Request, unitNumber string)
	AssignmentCompleted(ctx context.Context, tenant *models.Tenant, req *models.Request)
}

// NotificationConfig holds the sender identities. Empty keys leave the
// matching channel disabled.
type NotificationConfig struct {
	OrgName         string
	FromEmail       string
	FromPhone       string
	SendGridAPIKey  string
	TwilioSID       string
	TwilioToken     string
	SendGridSandbox bool
}

type NotificationService struct {
	cfg      NotificationConfig
	twClient *twilio.RestClient
	sgClient *sendgrid.Client
}

func NewNotificationService(cfg NotificationConfig) *NotificationService {
	s := &NotificationService{cfg: cfg}
	if cfg.TwilioSID != "" && cfg.TwilioToken != "" {
		s.twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioSID,
			Password: cfg.TwilioToken,
		})
	}
	if cfg.SendGridAPIKey != "" {
		s.sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return s
}

func (s *NotificationService) StaffAssigned(ctx context.Context, staff *models.Staff, req *models.Request, unitNumber string) {
	if staff == nil || staff.Phone == nil || *staff.Phone == "" {
		return
	}
	if s.twClient == nil {
		utils.Logger.Debugf("Twilio client is nil, skipping SMS to staff %s", staff.ID)
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(*staff.Phone)
	params.SetFrom(s.cfg.FromPhone)
	params.SetBody(fmt.Sprintf(assignmentSMSTemplate, req.IssueType, req.Priority, unitNumber, req.ID))
	_, err := s.twClient.Api.CreateMessage(params)
	telemetry.RecordNotification("sms", err)
	if err != nil {
		utils.Logger.WithError(err).WithField("staffID", staff.ID).Warn("Failed to send assignment SMS")
	}
}

func (s *NotificationService) AssignmentCompleted(ctx context.Context, tenant *models.Tenant, req *models.Request) {
	if tenant == nil || tenant.Email == "" {
		return
	}
	if s.sgClient == nil {
		utils.Logger.Debugf("SendGrid client is nil, skipping email to tenant %s", tenant.ID)
		return
	}

	completedAt := req.UpdatedAt.Format(time.RFC1123Z)
	plain := fmt.Sprintf(completionEmailText, tenant.FullName, req.IssueType, req.Description, completedAt)
	htmlBody := fmt.Sprintf(
		completionEmailHTML,
		completionEmailSubject,
		html.EscapeString(tenant.FullName),
		html.EscapeString(string(req.IssueType)),
		html.EscapeString(req.Description),
		completedAt,
	)

	from := mail.NewEmail(s.cfg.OrgName, s.cfg.FromEmail)
	to := mail.NewEmail(tenant.FullName, tenant.Email)
	msg := mail.NewSingleEmail(from, completionEmailSubject, to, plain, htmlBody)
	if s.cfg.SendGridSandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := s.sgClient.Send(msg)
	if err == nil && resp != nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	telemetry.RecordNotification("email", err)
	if err != nil {
		utils.Logger.WithError(err).WithField("tenantID", tenant.ID).Warn("Failed to send completion email")
	}
}
