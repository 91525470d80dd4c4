package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/swifttrack/internal/config"
)

func TestSendTextEmailGuards(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendPackageStatusEmail("alice@example.com", PackageStatusEmailInput{
		TrackingNumber: "SW12345678",
		Status:         "in_transit",
	}); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("disabled want ErrEmailServiceDisabled got %v", err)
	}

	incomplete := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := incomplete.SendPackageStatusEmail("alice@example.com", PackageStatusEmailInput{
		TrackingNumber: "SW12345678",
		Status:         "in_transit",
	}); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("incomplete config want ErrEmailServiceNotConfigured got %v", err)
	}

	badRecipient := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})
	if err := badRecipient.SendPackageStatusEmail("not-an-address", PackageStatusEmailInput{
		TrackingNumber: "SW12345678",
		Status:         "in_transit",
	}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad recipient want ErrInvalidEmail got %v", err)
	}
}

func TestSendContactReceivedEmailRequiresAdminRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	if err := svc.SendContactReceivedEmail(ContactReceivedEmailInput{
		ContactID: 1,
		Name:      "Alice Chen",
		Email:     "alice@example.com",
		Message:   "Where is my package?",
	}); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("missing admin_to want ErrEmailServiceNotConfigured got %v", err)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"in_transit", "in transit"},
		{"out_for_delivery", "out for delivery"},
		{"delivered", "delivered"},
		{"  created  ", "created"},
	}
	for _, tc := range cases {
		if got := statusLabel(tc.in); got != tc.want {
			t.Fatalf("statusLabel(%q) want %q got %q", tc.in, tc.want, got)
		}
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("550 5.1.1 recipient address rejected"), true},
		{fmt.Errorf("user unknown"), true},
		{fmt.Errorf("550 mailbox unavailable"), true},
		{fmt.Errorf("421 service not available"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := isEmailRecipientRejected(tc.err); got != tc.want {
			t.Fatalf("isEmailRecipientRejected(%v) want %v got %v", tc.err, tc.want, got)
		}
	}
}
