package notification

// NoticeType identifies a kind of notice sent to account holders.
type NoticeType string

const (
	// AccountCreatedNotice tells a new member their account exists. The
	// notice carries the username only; the temporary credential is handed to
	// the administrator exactly once and never mailed.
	AccountCreatedNotice NoticeType = "account_created"
)

// NotificationData carries the recipient and template values for one notice.
type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	Subject string            // Optional subject override
	Body    string            // Optional pre-rendered body
	Data    map[string]string // Values substituted into the registered template
}

// NoticeTemplate holds the subject and body templates for one notice type.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, noticeTemplate NoticeTemplate) error
}
