package notification

// NewEmailNotificationManager wires an SMTP notifier and registers the
// registrar's notice templates. Template data never includes credential
// material.
func NewEmailNotificationManager(smtpConfig SMTPConfig) (*NotificationManager, error) {
	notificationManager := NewNotificationManager()

	emailNotifier, err := NewEmailNotifier(smtpConfig)
	if err != nil {
		return nil, err
	}

	notificationManager.RegisterNotifier(EmailSystem, emailNotifier)

	err = notificationManager.RegisterNotification(AccountCreatedNotice, EmailSystem, NoticeTemplate{
		Subject: "Your co-op account is ready",
		Text: "Hello {{.FirstName}},\n\n" +
			"An account has been created for you. Your username is {{.Username}}.\n" +
			"Your administrator will hand you a temporary password; you will be asked " +
			"to change it and verify your email address on first sign-in.\n",
	})
	if err != nil {
		return nil, err
	}

	return notificationManager, nil
}
