package intent

// UnknownIntent is the sentinel returned when no catalog entry scores above
// zero. It is not a catalog entry itself.
const UnknownIntent = "unknown"

// CatalogEntry is one recognizable intent with its example utterances.
type CatalogEntry struct {
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
}

// Catalog is an ordered list of intents. Ties between entries resolve to the
// earlier entry, so ordering is part of the contract.
type Catalog []CatalogEntry

// DefaultCatalog returns the built-in intent catalog for the appraisal
// platform assistant.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Name: "greeting",
			Examples: []string{
				"hello",
				"hi there",
				"hey",
				"good morning",
				"good afternoon",
			},
		},
		{
			Name: "farewell",
			Examples: []string{
				"goodbye",
				"bye",
				"see you later",
				"thanks bye",
			},
		},
		{
			Name: "appraisal_deadline",
			Examples: []string{
				"when is the appraisal deadline",
				"what is the due date for my appraisal",
				"last day to submit the appraisal",
				"appraisal submission cutoff",
			},
		},
		{
			Name: "appraisal_status",
			Examples: []string{
				"what is the status of my appraisal",
				"has my appraisal been reviewed",
				"where is my appraisal in the process",
				"check appraisal progress",
			},
		},
		{
			Name: "submit_appraisal",
			Examples: []string{
				"how do i submit my appraisal",
				"steps to submit the appraisal form",
				"where do i send my completed appraisal",
				"submitting my self assessment",
			},
		},
		{
			Name: "scoring_method",
			Examples: []string{
				"how is my performance score calculated",
				"what do the appraisal ratings mean",
				"explain the scoring method",
				"how are section weights applied to my score",
			},
		},
		{
			Name: "edit_appraisal",
			Examples: []string{
				"can i edit my appraisal after submitting",
				"how do i change my appraisal answers",
				"update a submitted appraisal form",
			},
		},
		{
			Name: "supervisor_review",
			Examples: []string{
				"how do i review my team appraisals",
				"approve or reject an employee appraisal",
				"supervisor review process for appraisals",
			},
		},
		{
			Name: "account_access",
			Examples: []string{
				"i forgot my password",
				"reset my password",
				"cannot log in to the portal",
				"my account is locked",
			},
		},
	}
}
