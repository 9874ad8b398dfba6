package audit

import "fmt"

// ContentEvent represents a content lifecycle audit event
// (create, read, update, delete).
type ContentEvent struct {
	AccountName  string
	ClientIP     string
	ContentID    int64
	Operation    string
	Success      bool
	ErrorMessage string
}

func (e ContentEvent) MessageID() string {
	return e.Operation
}

func (e ContentEvent) Message() string {
	subject := fmt.Sprintf("content %d", e.ContentID)
	if e.ContentID == 0 {
		subject = "content"
	}
	if e.Success {
		return fmt.Sprintf("%s performed %s on %s", e.AccountName, e.Operation, subject)
	}
	msg := fmt.Sprintf("%s tried to %s %s", e.AccountName, e.Operation, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ContentEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ContentEvent) Facility() int {
	return FacilityAuth
}

func (e ContentEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.AccountName,
		},
		SDIDSubject: {
			"content": fmt.Sprintf("%d", e.ContentID),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
