package screening

import (
	"strings"
	"time"
)

// Field identifies a single piece of candidate information collected during a
// screening conversation.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldExperience Field = "experience"
	FieldPosition   Field = "position"
	FieldLocation   Field = "location"
	FieldTechStack  Field = "tech_stack"
)

// requiredFields is the fixed order in which the assistant asks for missing
// information.
var requiredFields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldExperience,
	FieldPosition,
	FieldLocation,
	FieldTechStack,
}

// CandidateRecord accumulates validated candidate details over one session.
// Only the owning session writes to it.
type CandidateRecord struct {
	Name       string
	Email      string
	Phone      string
	Experience string
	Position   string
	Location   string
	TechStack  []string
}

func (r *CandidateRecord) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldExperience:
		return r.Experience
	case FieldPosition:
		return r.Position
	case FieldLocation:
		return r.Location
	case FieldTechStack:
		return strings.Join(r.TechStack, ", ")
	}
	return ""
}

// Set stores a validated value. An already validated field is never replaced,
// keeping the first accepted value authoritative.
func (r *CandidateRecord) Set(f Field, value string) {
	if r.Get(f) != "" {
		return
	}
	switch f {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldExperience:
		r.Experience = value
	case FieldPosition:
		r.Position = value
	case FieldLocation:
		r.Location = value
	case FieldTechStack:
		r.TechStack = ParseTechStack(value)
	}
}

func (r *CandidateRecord) MissingFields() []Field {
	missing := make([]Field, 0, len(requiredFields))
	for _, f := range requiredFields {
		if r.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

func (r *CandidateRecord) Complete() bool {
	return len(r.MissingFields()) == 0
}

// Summary is the finalized view of a session handed to the persistent sink.
type Summary struct {
	CreatedAt time.Time
	Record    CandidateRecord
	Questions []string
	Sentiment string
}

// SummarySink receives one finalized record per closed session.
type SummarySink interface {
	Append(s Summary) error
}
