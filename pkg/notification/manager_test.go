package notification

import (
	"testing"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager()
	if nm == nil {
		t.Fatal("NewNotificationManager returned nil")
	}
	if nm.notifiers == nil {
		t.Error("notifiers map not initialized")
	}
	if nm.notificationRegistry == nil {
		t.Error("notificationRegistry map not initialized")
	}
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager()
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	if n, exists := nm.notifiers[EmailSystem]; !exists {
		t.Error("Notifier not registered")
	} else if n != mockNotifier {
		t.Error("Wrong notifier registered")
	}
}

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager()

	if err := nm.RegisterNotification("", EmailSystem, NoticeTemplate{}); err == nil {
		t.Error("expected error for empty notice type")
	}

	err := nm.RegisterNotification(AccountCreatedNotice, EmailSystem, NoticeTemplate{
		Subject: "Your co-op account is ready",
		Text:    "Hello {{.FirstName}}",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager()
	mockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, mockNotifier)

	data := NotificationData{To: "member@example.com", Data: map[string]string{"Username": "member@example.com"}}

	// No template registered yet
	if err := nm.Send(AccountCreatedNotice, data); err == nil {
		t.Error("expected error for unregistered notice type")
	}

	if err := nm.RegisterNotification(AccountCreatedNotice, EmailSystem, NoticeTemplate{Subject: "s", Text: "t"}); err != nil {
		t.Fatalf("failed to register notification: %v", err)
	}

	if err := nm.Send(AccountCreatedNotice, data); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(mockNotifier.SentNotifications) != 1 {
		t.Errorf("expected 1 sent notification, got %d", len(mockNotifier.SentNotifications))
	}
	if mockNotifier.SentNotifications[0].To != "member@example.com" {
		t.Errorf("wrong recipient: %s", mockNotifier.SentNotifications[0].To)
	}
}
