package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/models"
)

// notificationQueueSize bounds the in-flight notification backlog. Intake is
// human-paced; if the queue ever fills, dropping (with a log line) is better
// than blocking the request path.
const notificationQueueSize = 64

// NotificationService sends quote-related emails on a best-effort basis.
// Messages are queued and delivered by a background worker so a slow or
// failing mail relay can never block or fail the request that produced the
// notification. Delivery failures are logged and dropped.
type NotificationService struct {
	mailer     Mailer
	adminEmail string

	queue     chan Email
	wg        sync.WaitGroup
	closeOnce sync.Once
}

var notificationServiceInstance *NotificationService

// InitNotificationService initializes the notification service with the given
// mail transport and starts its delivery worker.
func InitNotificationService(mailer Mailer, adminEmail string) *NotificationService {
	notificationServiceInstance = NewNotificationService(mailer, adminEmail)
	return notificationServiceInstance
}

// GetNotificationService returns the initialized notification service instance
func GetNotificationService() *NotificationService {
	return notificationServiceInstance
}

// SetNotificationService sets the notification service instance (primarily for testing)
func SetNotificationService(s *NotificationService) {
	notificationServiceInstance = s
}

// NewNotificationService creates a notification service and starts its worker.
// Call Close to drain the queue on shutdown.
func NewNotificationService(mailer Mailer, adminEmail string) *NotificationService {
	s := &NotificationService{
		mailer:     mailer,
		adminEmail: adminEmail,
		queue:      make(chan Email, notificationQueueSize),
	}
	s.wg.Add(1)
	go s.deliveryWorker()
	return s
}

// deliveryWorker drains the queue until Close is called.
func (s *NotificationService) deliveryWorker() {
	defer s.wg.Done()
	for email := range s.queue {
		if err := s.mailer.Send(email); err != nil {
			log.Printf("Notification delivery failed (to=%s subject=%q): %v", email.To, email.Subject, err)
		}
	}
}

// enqueue hands an email to the worker without ever blocking the caller.
func (s *NotificationService) enqueue(email Email) {
	select {
	case s.queue <- email:
	default:
		log.Printf("Notification queue full, dropping email to %s", email.To)
	}
}

// Close stops accepting notifications and waits for the queued ones to be
// attempted.
func (s *NotificationService) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

// NotifyAdminOfNewQuote queues the "new quote request" email to the admin
// inbox. The record must already be persisted: the email references its id.
func (s *NotificationService) NotifyAdminOfNewQuote(qr *models.QuoteRequest) {
	serviceName := qr.ServiceName
	if serviceName == "" {
		serviceName = qr.ServiceID
	}

	phone := "Not provided"
	if qr.Phone != nil && *qr.Phone != "" {
		phone = *qr.Phone
	}
	requirements := "Not provided"
	if qr.Requirements != nil && *qr.Requirements != "" {
		requirements = *qr.Requirements
	}
	budget := "Not provided"
	if qr.Budget != nil {
		budget = fmt.Sprintf("%.0f FCFA", *qr.Budget)
	}
	submitted := qr.CreatedAt.Format("January 2, 2006 at 15:04")

	textBody := fmt.Sprintf(`New quote request

Service: %s
Name: %s
Email: %s
Phone: %s
Budget: %s
Submitted: %s

Requirements:
%s

Quote Request ID: #%d`,
		serviceName, qr.Name, qr.Email, phone, budget, submitted, requirements, qr.ID)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0B5394;">New Quote Request</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Service:</strong> %s</p>
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Budget:</strong> %s</p>
            <p><strong>Submitted:</strong> %s</p>
        </div>
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #0B5394; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #0D1A2D; margin-top: 0;">Requirements:</h3>
            <p style="white-space: pre-wrap;">%s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Quote Request ID: #%d</p>
    </div>
</body>
</html>`,
		serviceName, qr.Name, qr.Email, qr.Email, phone, budget, submitted, requirements, qr.ID)

	s.enqueue(Email{
		To:       s.adminEmail,
		Subject:  fmt.Sprintf("New quote request for %s from %s", serviceName, qr.Name),
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// statusMessages maps a new status to the sentence shown to the requester.
var statusMessages = map[string]string{
	models.StatusInProgress: "Our team is reviewing your request and will get back to you shortly.",
	models.StatusQuoted:     "Your quote is ready. A member of our team has sent it to this address or will contact you shortly.",
	models.StatusAccepted:   "Thank you for accepting our quote. We will be in touch to plan the next steps.",
	models.StatusRejected:   "We are unable to take on this request at the moment. Feel free to contact us for alternatives.",
	models.StatusCancelled:  "Your quote request has been cancelled. If this is unexpected, please contact us.",
}

// NotifyRequesterOfStatusChange queues a status update email to the
// requester. Statuses without a customer-facing message (a return to
// pending under the permissive policy) are skipped.
func (s *NotificationService) NotifyRequesterOfStatusChange(qr *models.QuoteRequest) {
	message, ok := statusMessages[qr.Status]
	if !ok {
		return
	}

	serviceName := qr.ServiceName
	if serviceName == "" {
		serviceName = qr.ServiceID
	}

	textBody := fmt.Sprintf(`Hello %s,

There is an update on your quote request for %s (reference #%d).

Status: %s

%s

Best regards,
The Experience Tech team`,
		qr.Name, serviceName, qr.ID, qr.Status, message)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0B5394;">Update on your quote request</h2>
        <p>Hello %s,</p>
        <p>There is an update on your quote request for <strong>%s</strong> (reference #%d).</p>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Status:</strong> %s</p>
            <p>%s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Best regards,<br>The Experience Tech team</p>
    </div>
</body>
</html>`,
		qr.Name, serviceName, qr.ID, qr.Status, message)

	s.enqueue(Email{
		To:       qr.Email,
		Subject:  fmt.Sprintf("Update on your quote request #%d", qr.ID),
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}
