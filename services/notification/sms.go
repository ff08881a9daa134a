package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"motoslot/models"

	"go.uber.org/zap"
)

// tbilisi is the timezone lesson times are rendered in.
var tbilisi = mustLoadTbilisi()

func mustLoadTbilisi() *time.Location {
	loc, err := time.LoadLocation("Asia/Tbilisi")
	if err != nil {
		return time.FixedZone("Asia/Tbilisi", 4*60*60)
	}
	return loc
}

// SMSOfficeSender sends booking confirmations through an smsoffice.ge-style
// HTTP API.
type SMSOfficeSender struct {
	baseURL    string
	apiKey     string
	sender     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSMSOfficeSender(baseURL, apiKey, sender string, httpClient *http.Client, logger *zap.Logger) *SMSOfficeSender {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &SMSOfficeSender{baseURL: baseURL, apiKey: apiKey, sender: sender, httpClient: httpClient, logger: logger}
}

type smsOfficeRequest struct {
	Key         string `json:"key"`
	Destination string `json:"destination"`
	Sender      string `json:"sender"`
	Content     string `json:"content"`
}

func (s *SMSOfficeSender) SendBookingSMS(ctx context.Context, sms models.BookingSMS) error {
	message, err := FormatBookingMessage(sms)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(smsOfficeRequest{
		Key:         s.apiKey,
		Destination: sms.Phone,
		Sender:      s.sender,
		Content:     message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v2/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	s.logger.Info("confirmation sms sent",
		zap.String("phone", sms.Phone),
		zap.String("bookingRef", sms.BookingRef),
	)
	return nil
}

// FormatBookingMessage renders the confirmation text. Lesson date and time
// are shown in Tbilisi local time.
func FormatBookingMessage(sms models.BookingSMS) (string, error) {
	lessonTime, err := time.Parse(time.RFC3339, sms.DateTime)
	if err != nil {
		return "", fmt.Errorf("invalid lesson dateTime %q: %w", sms.DateTime, err)
	}
	local := lessonTime.In(tbilisi)

	message := "MotoSlot - Lesson Booked!\n" +
		"Ref: " + sms.BookingRef + "\n" +
		"Date: " + local.Format("2 January 2006") + "\n" +
		"Time: " + local.Format("15:04") + "\n" +
		"Location: " + sms.Location + "\n"
	if sms.InstructorName != "" {
		message += "Instructor: " + sms.InstructorName + "\n"
	}
	if sms.ContactPhone != "" {
		message += "Contact: " + sms.ContactPhone + "\n"
	}
	message += "See you there!"
	return message, nil
}
