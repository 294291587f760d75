package notification

import (
	"fmt"
)

// NotificationSystem represents a delivery channel (e.g., email).
type NotificationSystem string

const (
	EmailSystem NotificationSystem = "email"
)

// NotificationManager manages notifiers and notification templates.
type NotificationManager struct {
	notifiers            map[NotificationSystem]Notifier
	notificationRegistry map[NoticeType]map[NotificationSystem]NoticeTemplate
}

// NewNotificationManager creates and returns a new NotificationManager.
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		notifiers:            make(map[NotificationSystem]Notifier),
		notificationRegistry: make(map[NoticeType]map[NotificationSystem]NoticeTemplate),
	}
}

// RegisterNotifier registers a notifier for a specific system.
func (nm *NotificationManager) RegisterNotifier(system NotificationSystem, notifier Notifier) {
	nm.notifiers[system] = notifier
}

// RegisterNotification adds a notice template to the registry.
func (nm *NotificationManager) RegisterNotification(noticeType NoticeType, system NotificationSystem, noticeTemplate NoticeTemplate) error {
	if noticeType == "" || system == "" {
		return fmt.Errorf("invalid input: notice type and system cannot be empty")
	}

	if _, exists := nm.notificationRegistry[noticeType]; !exists {
		nm.notificationRegistry[noticeType] = make(map[NotificationSystem]NoticeTemplate)
	}

	nm.notificationRegistry[noticeType][system] = noticeTemplate
	return nil
}

// Send delivers a notice through every system registered for its type.
func (nm *NotificationManager) Send(noticeType NoticeType, notification NotificationData) error {
	systemTemplates, exists := nm.notificationRegistry[noticeType]
	if !exists {
		return fmt.Errorf("no templates registered for notice type: %s", noticeType)
	}

	for system, noticeTemplate := range systemTemplates {
		notifier, exists := nm.notifiers[system]
		if !exists {
			return fmt.Errorf("no notifier registered for system: %s", system)
		}

		if err := notifier.Send(noticeType, notification, noticeTemplate); err != nil {
			return err
		}
	}

	return nil
}
