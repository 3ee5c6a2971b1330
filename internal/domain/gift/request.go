package gift

import "time"

// Field names of the /generate_gifts request body.
const (
	FieldCallThem          = "call_them"
	FieldRelationship      = "relationship"
	FieldPreviousGifts     = "previous_gifts"
	FieldHate              = "hate"
	FieldComplaints        = "complaints"
	FieldComplainAboutThem = "complain_about_them"
	FieldBudget            = "budget"
	FieldLimitations       = "limitations"
)

// RequestFields lists the request body fields in prompt order.
var RequestFields = []string{
	FieldCallThem,
	FieldRelationship,
	FieldPreviousGifts,
	FieldHate,
	FieldComplaints,
	FieldComplainAboutThem,
	FieldBudget,
	FieldLimitations,
}

// GiftRequest is the flat field -> answer body posted to /generate_gifts.
type GiftRequest map[string]string

func (r GiftRequest) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// Generation is a successful /generate_gifts outcome.
type Generation struct {
	GiftIdeas []GiftIdea `json:"gift_ideas"`
	ResultID  string     `json:"result_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
