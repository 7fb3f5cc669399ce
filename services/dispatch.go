// services/dispatch.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"userpulse-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// errNotDue marks invitations whose event delay has not elapsed yet
var errNotDue = errors.New("delay window not elapsed")

// DispatchService sends pending survey invitations over the contact's
// channel (email via SMTP, sms via Twilio) and rescans the queue on a
// schedule.
type DispatchService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewDispatchService(db *gorm.DB) *DispatchService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &DispatchService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *DispatchService) StartScheduler() {
	c := cron.New()

	// Rescan the pending queue every 5 minutes
	c.AddFunc("*/5 * * * *", func() {
		s.DispatchPending()
	})

	c.Start()
	log.Println("Invitation dispatch scheduler started")
}

// DispatchPending sends every pending invitation whose event delay has
// elapsed. Failures mark the row failed with the error message; the row is
// not retried automatically.
func (s *DispatchService) DispatchPending() {
	var pending []models.SurveyInvitation
	if err := s.db.Where("status = ?", "pending").Find(&pending).Error; err != nil {
		log.Printf("Failed to fetch pending invitations: %v", err)
		return
	}

	for _, inv := range pending {
		if err := s.dispatchOne(&inv); err != nil {
			if errors.Is(err, errNotDue) {
				continue // stays pending for the next scan
			}
			log.Printf("Invitation %s: dispatch failed: %v", inv.ID, err)
			s.db.Model(&inv).Updates(map[string]interface{}{
				"status":        "failed",
				"error_message": err.Error(),
			})
			continue
		}
		now := time.Now()
		s.db.Model(&inv).Updates(map[string]interface{}{
			"status":  "sent",
			"sent_at": now,
		})
	}
}

func (s *DispatchService) dispatchOne(inv *models.SurveyInvitation) error {
	var event models.SurveyEvent
	if err := s.db.First(&event, "id = ?", inv.SurveyEventID).Error; err != nil {
		return fmt.Errorf("survey event lookup failed: %w", err)
	}
	if !event.IsActive {
		return fmt.Errorf("survey event %s is inactive", event.ID)
	}
	if event.DelayMinutes > 0 && time.Since(inv.CreatedAt) < time.Duration(event.DelayMinutes)*time.Minute {
		return errNotDue
	}

	var contact models.Contact
	if err := s.db.First(&contact, "id = ?", inv.ContactID).Error; err != nil {
		return fmt.Errorf("contact lookup failed: %w", err)
	}

	body := renderTemplate(event.TemplateBody, contact, inv.Token)

	switch inv.Channel {
	case "sms":
		if contact.Phone == nil || *contact.Phone == "" {
			return fmt.Errorf("contact has no phone")
		}
		return s.sendSMS(*contact.Phone, body)
	case "email":
		if contact.Email == nil || *contact.Email == "" {
			return fmt.Errorf("contact has no email")
		}
		return SendEmail(*contact.Email, event.TemplateSubject, body)
	default:
		return fmt.Errorf("unknown channel: %s", inv.Channel)
	}
}

func (s *DispatchService) sendSMS(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(os.Getenv("TWILIO_FROM_NUMBER"))
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

// SendEmail delivers a message through the configured SMTP server
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	return d.DialAndSend(m)
}

// renderTemplate substitutes the supported placeholders into a message body
func renderTemplate(body string, contact models.Contact, token string) string {
	surveyURL := fmt.Sprintf("%s/r/%s", strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"), token)
	out := strings.ReplaceAll(body, "{{first_name}}", contact.FirstName)
	out = strings.ReplaceAll(out, "{{last_name}}", contact.LastName)
	out = strings.ReplaceAll(out, "{{survey_url}}", surveyURL)
	return out
}
