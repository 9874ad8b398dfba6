package audit

import "fmt"

// LoginEvent represents a login or logout audit event
type LoginEvent struct {
	AccountName  string
	ClientIP     string
	Action       string // "login" or "logout"
	Success      bool
	ErrorMessage string
}

func (e LoginEvent) MessageID() string {
	return e.Action
}

func (e LoginEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %s succeeded", e.AccountName, e.Action)
	}
	msg := fmt.Sprintf("%s %s failed", e.AccountName, e.Action)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e LoginEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e LoginEvent) Facility() int {
	return FacilityAuthPriv
}

func (e LoginEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.AccountName,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
