// Package compose turns a classified intent and its confidence into the
// final response payload shown to the user.
package compose

import (
	"fmt"
	"strings"
)

// Confidence labels carried on every response payload.
const (
	LabelHigh   = "HIGH"
	LabelMedium = "MEDIUM"
	LabelLow    = "LOW"
)

// Source labels identifying which path produced the answer.
const (
	SourceAssistant    = "AI Assistant"
	SourceMedium       = "AI Assistant (Medium Confidence)"
	SourceLow          = "AI Assistant (Low Confidence)"
	SourceErrorHandler = "Error Handler"
)

// Thresholds are the confidence tier boundaries, highest first. Construction
// through config validation guarantees High > Medium > Low.
type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultThresholds matches the platform defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.8, Medium: 0.6, Low: 0.4}
}

// SuggestedAction is an optional follow-up the UI can render as a button.
type SuggestedAction struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// ResponsePayload is the composed answer.
type ResponsePayload struct {
	AnswerText      string           `json:"answerText"`
	ConfidenceLabel string           `json:"confidenceLabel"`
	SuggestedAction *SuggestedAction `json:"suggestedAction,omitempty"`
	SourceLabel     string           `json:"sourceLabel"`
}

// Composer maps (intent, confidence) to a response. The tier follows
// confidence alone; an intent without curated text gets a generic
// acknowledgement in place of the canned answer.
type Composer struct {
	thresholds Thresholds
	answers    map[string]string
	actions    map[string]SuggestedAction
}

func NewComposer(thresholds Thresholds) *Composer {
	return &Composer{
		thresholds: thresholds,
		answers: map[string]string{
			"greeting":           "Hello! I'm the appraisal assistant. Ask me anything about your performance appraisal, deadlines, or how scoring works.",
			"farewell":           "Goodbye! Come back any time you have a question about your appraisal.",
			"appraisal_deadline": "Appraisal submissions close on the due date shown on your appraisal card. You will also receive a reminder three days before the deadline.",
			"appraisal_status":   "You can check your appraisal status on the My Appraisals page. It moves through Draft, Submitted, In Review and Completed.",
			"submit_appraisal":   "Open your appraisal from the My Appraisals page, complete every section, then press Submit. Your supervisor is notified automatically.",
			"scoring_method":     "Your total score is the weighted average of your section ratings. Each section's weight is defined by the appraisal template, and the total maps to a grade band.",
			"edit_appraisal":     "Submitted appraisals are locked. If you need to make a change, ask your supervisor to reject it back to Draft and you can edit it again.",
			"supervisor_review":  "From the Team Appraisals page you can open each submitted appraisal, adjust ratings where needed, and either complete or reject it.",
			"account_access":     "Use the Forgot Password link on the login page. If your account is locked, contact the HR service desk to unlock it.",
		},
		actions: map[string]SuggestedAction{
			"appraisal_deadline": {Label: "View my appraisals", Target: "/appraisals"},
			"appraisal_status":   {Label: "View my appraisals", Target: "/appraisals"},
			"submit_appraisal":   {Label: "Open my appraisal", Target: "/appraisals"},
			"supervisor_review":  {Label: "Open team appraisals", Target: "/team/appraisals"},
			"account_access":     {Label: "Reset password", Target: "/password-reset"},
		},
	}
}

// Compose builds the payload for the classified intent. Confidence at or
// above High answers directly; at or above Medium answers with a hedge; below
// that asks for clarification.
func (c *Composer) Compose(intentName string, confidence float64) ResponsePayload {
	answer, curated := c.answers[intentName]

	switch {
	case confidence >= c.thresholds.High:
		if !curated {
			answer = fmt.Sprintf("You're asking about %s. I don't have a detailed answer for that yet; the FAQ list for your role is the best place to look.",
				humanize(intentName))
		}
		payload := ResponsePayload{
			AnswerText:      answer,
			ConfidenceLabel: LabelHigh,
			SourceLabel:     SourceAssistant,
		}
		if action, ok := c.actions[intentName]; ok {
			payload.SuggestedAction = &action
		}
		return payload

	case confidence >= c.thresholds.Medium:
		text := fmt.Sprintf("I think you're asking about %s.", humanize(intentName))
		if curated {
			text += " " + answer
		}
		text += " If that's not it, try rephrasing your question."
		return ResponsePayload{
			AnswerText:      text,
			ConfidenceLabel: LabelMedium,
			SuggestedAction: &SuggestedAction{Label: "Get More Help", Target: "/help"},
			SourceLabel:     SourceMedium,
		}

	default:
		return ResponsePayload{
			AnswerText:      "I'm sorry, I'm not sure I understood that. Could you rephrase your question, or browse the FAQ list for your role?",
			ConfidenceLabel: LabelLow,
			SuggestedAction: &SuggestedAction{Label: "Browse FAQs", Target: "/faqs"},
			SourceLabel:     SourceLow,
		}
	}
}

// ErrorResponse is the fixed apology returned when the answering pipeline
// fails unexpectedly.
func ErrorResponse() ResponsePayload {
	return ResponsePayload{
		AnswerText:      "Something went wrong while answering your question. Please try again in a moment.",
		ConfidenceLabel: LabelLow,
		SourceLabel:     SourceErrorHandler,
	}
}

func humanize(intentName string) string {
	return strings.ReplaceAll(intentName, "_", " ")
}
