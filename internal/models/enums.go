package models

type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "OPEN"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
	RequestStatusClosed     RequestStatus = "CLOSED"
)

var AllRequestStatuses = []RequestStatus{
	RequestStatusOpen,
	RequestStatusInProgress,
	RequestStatusPending,
	RequestStatusCompleted,
	RequestStatusClosed,
}

// OpenRequestStatuses and ClosedRequestStatuses partition AllRequestStatuses.
var (
	OpenRequestStatuses   = []RequestStatus{RequestStatusOpen, RequestStatusInProgress, RequestStatusPending}
	ClosedRequestStatuses = []RequestStatus{RequestStatusCompleted, RequestStatusClosed}
)

func (s RequestStatus) IsValid() bool {
	for _, v := range AllRequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether entering s records closed_at.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusClosed
}

type Priority string

const (
	PriorityLow       Priority = "Low"
	PriorityMedium    Priority = "Medium"
	PriorityHigh      Priority = "High"
	PriorityEmergency Priority = "Emergency"
)

var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency}

func (p Priority) IsValid() bool {
	for _, v := range AllPriorities {
		if v == p {
			return true
		}
	}
	return false
}

type IssueType string

const (
	IssueTypePlumbing    IssueType = "Plumbing"
	IssueTypeElectrical  IssueType = "Electrical"
	IssueTypeHVAC        IssueType = "HVAC"
	IssueTypeAppliances  IssueType = "Appliances"
	IssueTypeCleaning    IssueType = "Cleaning"
	IssueTypePestControl IssueType = "Pest Control"
	IssueTypeSecurity    IssueType = "Security"
	IssueTypeStructural  IssueType = "Structural"
	IssueTypeOther       IssueType = "Other"
)

var AllIssueTypes = []IssueType{
	IssueTypePlumbing,
	IssueTypeElectrical,
	IssueTypeHVAC,
	IssueTypeAppliances,
	IssueTypeCleaning,
	IssueTypePestControl,
	IssueTypeSecurity,
	IssueTypeStructural,
	IssueTypeOther,
}

func (t IssueType) IsValid() bool {
	for _, v := range AllIssueTypes {
		if v == t {
			return true
		}
	}
	return false
}

type NoteAuthorType string

const (
	NoteAuthorTenant NoteAuthorType = "tenant"
	NoteAuthorStaff  NoteAuthorType = "staff"
)
