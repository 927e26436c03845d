// Package api defines the JSON message types exchanged with the gsc
// server. Field names mirror the wire format; these types are read-only
// snapshots on the fetch side and sparse patch bodies on the change side.
package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// FilePurpose classifies a submission file. The server assigns it; the
// client uses it for the ls column code and for the subdirectory a
// whole-homework download fans the file into.
type FilePurpose string

const (
	PurposeSource    FilePurpose = "source"
	PurposeTest      FilePurpose = "test"
	PurposeConfig    FilePurpose = "config"
	PurposeResource  FilePurpose = "resource"
	PurposeLog       FilePurpose = "log"
	PurposeForbidden FilePurpose = "forbidden"
)

// Char returns the single-character code shown in ls listings.
func (p FilePurpose) Char() byte {
	switch p {
	case PurposeSource:
		return 's'
	case PurposeTest:
		return 't'
	case PurposeConfig:
		return 'c'
	case PurposeResource:
		return 'r'
	case PurposeLog:
		return 'l'
	case PurposeForbidden:
		return 'F'
	}
	return '?'
}

// Dir returns the subdirectory a whole-homework download places the file
// in. "." means directly under the destination directory.
func (p FilePurpose) Dir() string {
	switch p {
	case PurposeSource:
		return "src"
	case PurposeTest:
		return "test"
	case PurposeResource:
		return "Resources"
	}
	return "."
}

// AutoDeletable reports whether the server may delete the file on its
// own. Whole-homework downloads skip such files.
func (p FilePurpose) AutoDeletable() bool {
	return p == PurposeLog
}

// Timestamp is a server datetime. The server historically emits both
// ‘2006-01-02 15:04:05 -0700’ and RFC 3339, so decoding accepts either;
// encoding always produces RFC 3339 with millisecond precision.
type Timestamp struct {
	time.Time
}

const serverTimeLayout = "2006-01-02 15:04:05 -0700"

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range []string{serverTimeLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

// String renders the timestamp in local time the way listings and status
// output show it.
func (t Timestamp) String() string {
	return t.Local().Format("Mon 02 Jan, 15:04 (-0700)")
}

// ParseTimestamp parses a user-entered datetime. The server's own wire
// layout and RFC 3339 are accepted as-is; layouts without a zone are
// taken as local time.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{serverTimeLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Timestamp{parsed}, nil
		}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{parsed}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("cannot parse datetime ‘%s’ (use ‘YYYY-MM-DD HH:MM’)", s)
}

// FileMeta describes one remote submission file.
type FileMeta struct {
	AssignmentNumber int         `json:"assignment_number"`
	ByteCount        int64       `json:"byte_count"`
	MediaType        string      `json:"media_type"`
	Name             string      `json:"name"`
	Purpose          FilePurpose `json:"purpose"`
	UploadTime       Timestamp   `json:"upload_time"`
	URI              string      `json:"uri"`
}

func (f FileMeta) String() string {
	return fmt.Sprintf("hw%d:%s", f.AssignmentNumber, f.Name)
}

// SubmissionStatus is the lifecycle phase of a submission.
type SubmissionStatus string

const (
	StatusFuture       SubmissionStatus = "future"
	StatusOpen         SubmissionStatus = "open"
	StatusExtended     SubmissionStatus = "extended"
	StatusOvertime     SubmissionStatus = "overtime"
	StatusSelfEval     SubmissionStatus = "self_eval"
	StatusExtendedEval SubmissionStatus = "extended_eval"
	StatusClosed       SubmissionStatus = "closed"
)

// IsSelfEval reports whether the submission is in a self-evaluation
// phase, which changes what the status display shows.
func (s SubmissionStatus) IsSelfEval() bool {
	switch s {
	case StatusOvertime, StatusSelfEval, StatusExtendedEval:
		return true
	}
	return false
}

func (s SubmissionStatus) String() string {
	switch s {
	case StatusFuture:
		return "future"
	case StatusOpen:
		return "open for submission"
	case StatusExtended:
		return "open for submission (extended)"
	case StatusOvertime:
		return "overtime submission or self-eval"
	case StatusSelfEval:
		return "open for self evaluation"
	case StatusExtendedEval:
		return "open for self evaluation (extended)"
	case StatusClosed:
		return "closed"
	}
	return string(s)
}

// SubmissionEvalStatus tracks self-evaluation progress.
type SubmissionEvalStatus string

const (
	EvalEmpty    SubmissionEvalStatus = "empty"
	EvalStarted  SubmissionEvalStatus = "started"
	EvalOverdue  SubmissionEvalStatus = "overdue"
	EvalComplete SubmissionEvalStatus = "complete"
)

// UserRole is the server-side permission level of an account.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleGrader  UserRole = "grader"
	RoleAdmin   UserRole = "admin"
)

// UserShort is the abbreviated user reference embedded in other
// messages.
type UserShort struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// ExamGrade is one recorded exam score.
type ExamGrade struct {
	Number   int `json:"number"`
	Points   int `json:"points"`
	Possible int `json:"possible"`
}

// PartnerRequestStatus is the state of a partnership request relative to
// the user it is listed under.
type PartnerRequestStatus string

const (
	PartnerOutgoing PartnerRequestStatus = "outgoing"
	PartnerIncoming PartnerRequestStatus = "incoming"
	PartnerAccepted PartnerRequestStatus = "accepted"
	PartnerCanceled PartnerRequestStatus = "canceled"
)

// PartnerRequest is one partnership request on one assignment.
type PartnerRequest struct {
	AssignmentNumber int                  `json:"assignment_number"`
	User             string               `json:"user"`
	Status           PartnerRequestStatus `json:"status"`
}

// User is the full account record.
type User struct {
	Name            string            `json:"name"`
	URI             string            `json:"uri"`
	SubmissionsURI  string            `json:"submissions_uri"`
	Role            UserRole          `json:"role"`
	ExamGrades      []ExamGrade       `json:"exam_grades"`
	PartnerRequests []PartnerRequest  `json:"partner_requests"`
	Submissions     []SubmissionShort `json:"submissions"`
}

// SubmissionShort is the abbreviated submission record returned by the
// per-user submissions listing; URI is the handle everything else is
// fetched through.
type SubmissionShort struct {
	AssignmentNumber int              `json:"assignment_number"`
	ID               int              `json:"id"`
	URI              string           `json:"uri"`
	Status           SubmissionStatus `json:"status"`
	Grade            float64          `json:"grade"`
	Owner1           UserShort        `json:"owner1"`
	Owner2           *UserShort       `json:"owner2,omitempty"`
}

// Submission is the full submission record.
type Submission struct {
	AssignmentNumber int                  `json:"assignment_number"`
	ID               int                  `json:"id"`
	URI              string               `json:"uri"`
	Grade            float64              `json:"grade"`
	FilesURI         string               `json:"files_uri"`
	EvalsURI         string               `json:"evals_uri"`
	Owner1           UserShort            `json:"owner1"`
	Owner2           *UserShort           `json:"owner2,omitempty"`
	BytesUsed        int64                `json:"bytes_used"`
	BytesQuota       int64                `json:"bytes_quota"`
	OpenDate         Timestamp            `json:"open_date"`
	DueDate          Timestamp            `json:"due_date"`
	EvalDate         Timestamp            `json:"eval_date"`
	LastModified     Timestamp            `json:"last_modified"`
	EvalStatus       SubmissionEvalStatus `json:"eval_status"`
	Status           SubmissionStatus     `json:"status"`
}

// QuotaRemaining returns the unused quota as a percentage.
func (s Submission) QuotaRemaining() float64 {
	return 100 * float64(s.BytesQuota-s.BytesUsed) / float64(s.BytesQuota)
}

// FileMetaChange is the sparse PATCH body for renaming or moving a
// remote file. Overwrite acknowledges replacing an existing file at the
// target name.
type FileMetaChange struct {
	AssignmentNumber *int         `json:"assignment_number,omitempty"`
	MediaType        *string      `json:"media_type,omitempty"`
	Name             *string      `json:"name,omitempty"`
	Purpose          *FilePurpose `json:"purpose,omitempty"`
	Overwrite        bool         `json:"overwrite"`
}

// IsEmpty reports whether the change would alter nothing.
func (c FileMetaChange) IsEmpty() bool {
	return c.AssignmentNumber == nil && c.MediaType == nil && c.Name == nil && c.Purpose == nil
}

// UserChange is the sparse PATCH body for account updates: password
// changes, partner request transitions, exam grades, and role changes.
type UserChange struct {
	ExamGrades      []ExamGrade      `json:"exam_grades,omitempty"`
	PartnerRequests []PartnerRequest `json:"partner_requests,omitempty"`
	Password        *string          `json:"password,omitempty"`
	Role            *UserRole        `json:"role,omitempty"`
}

// PasswordChange is the PATCH body for a bare password change.
type PasswordChange struct {
	Password string `json:"password"`
}

// SubmissionChange is the sparse PATCH body for administrative
// submission updates. RemoveOwner2 serializes as an explicit null
// owner2, which the server interprets as dissolving the partnership.
type SubmissionChange struct {
	DueDate      *Timestamp `json:"due_date,omitempty"`
	EvalDate     *Timestamp `json:"eval_date,omitempty"`
	BytesQuota   *int64     `json:"bytes_quota,omitempty"`
	RemoveOwner2 bool       `json:"-"`
}

func (c SubmissionChange) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if c.DueDate != nil {
		body["due_date"] = c.DueDate
	}
	if c.EvalDate != nil {
		body["eval_date"] = c.EvalDate
	}
	if c.BytesQuota != nil {
		body["bytes_quota"] = c.BytesQuota
	}
	if c.RemoveOwner2 {
		body["owner2"] = nil
	}
	return json.Marshal(body)
}

// ErrorBody is the JSON payload of a non-2xx response. Its contents are
// preserved verbatim in the resulting error.
type ErrorBody struct {
	Status  int    `json:"status"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}
