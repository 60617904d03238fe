// Package schema describes the questions asked for each entry type and the
// shape a submission body must have.
package schema

import "emdash-brief/pkg/models"

const (
	// DefaultProjectType and DefaultTimeline stand in for unanswered optional
	// contact questions wherever a display value is needed.
	DefaultProjectType = "Other"
	DefaultTimeline    = "Not sure"

	shortAnswerMaxLength = 500
	longAnswerMaxLength  = 5000
)

// Question is one step of a questionnaire.
type Question struct {
	Key         string   `json:"key"`
	Prompt      string   `json:"question"`
	Placeholder string   `json:"placeholder"`
	Chips       []string `json:"chips"`
	InputType   string   `json:"inputType"`
	Required    bool     `json:"required"`
	Fallback    string   `json:"fallback,omitempty"`
	MaxLength   int      `json:"maxLength"`
}

var projectTypeChips = []string{"Product Design", "Brand Identity", "Website Design", "Mobile App", "Marketing Materials"}

var projectBriefQuestions = []Question{
	{
		Key:         "whatToCreate",
		Prompt:      "What do you need designed?",
		Placeholder: "Type your project or select one below...",
		Chips:       projectTypeChips,
		InputType:   "text",
		Required:    true,
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "whoIsItFor",
		Prompt:      "Who is the intended audience?",
		Placeholder: "e.g., Tech startups, local restaurants, fitness enthusiasts...",
		InputType:   "text",
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "goal",
		Prompt:      "What's the goal?",
		Placeholder: "e.g., Increase conversions, build brand awareness, improve UX...",
		InputType:   "text",
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "feeling",
		Prompt:      "How do you want it to feel?",
		Placeholder: "e.g., Modern and clean, playful and vibrant, professional and trustworthy...",
		InputType:   "text",
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "businessName",
		Prompt:      "What's your business name?",
		Placeholder: "Your business or organization name",
		InputType:   "text",
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "email",
		Prompt:      "What's your email?",
		Placeholder: "your@email.com",
		InputType:   "email",
		Required:    true,
		MaxLength:   shortAnswerMaxLength,
	},
}

var contactFormQuestions = []Question{
	{
		Key:         "name",
		Prompt:      "What's your name?",
		Placeholder: "Your full name",
		InputType:   "text",
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "email",
		Prompt:      "What's your email?",
		Placeholder: "your@email.com",
		InputType:   "email",
		Required:    true,
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "businessName",
		Prompt:      "What's your business name?",
		Placeholder: "Your business or organization name",
		InputType:   "text",
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "projectType",
		Prompt:      "What kind of project is it?",
		Placeholder: "Select a project type",
		Chips:       append(append([]string{}, projectTypeChips...), DefaultProjectType),
		InputType:   "select",
		Fallback:    DefaultProjectType,
		MaxLength:   shortAnswerMaxLength,
	},
	{
		Key:         "description",
		Prompt:      "Tell us about your project",
		Placeholder: "A few sentences about what you have in mind...",
		InputType:   "textarea",
		MaxLength:   longAnswerMaxLength,
	},
	{
		Key:         "timeline",
		Prompt:      "What's your timeline?",
		Placeholder: "Select a timeline",
		Chips:       []string{"ASAP", "Within a month", "1-3 months", DefaultTimeline},
		InputType:   "select",
		Fallback:    DefaultTimeline,
		MaxLength:   shortAnswerMaxLength,
	},
}

// Questions returns the ordered questions for an entry type, or nil when the
// type is unknown. The returned slice is a copy.
func Questions(entryType models.EntryType) []Question {
	var src []Question
	switch entryType {
	case models.EntryTypeProjectBrief:
		src = projectBriefQuestions
	case models.EntryTypeContactForm:
		src = contactFormQuestions
	default:
		return nil
	}
	out := make([]Question, len(src))
	copy(out, src)
	return out
}

// EntryTypeFromSlug resolves the URL form of an entry type ("project-brief").
func EntryTypeFromSlug(slug string) (models.EntryType, bool) {
	switch slug {
	case "project-brief":
		return models.EntryTypeProjectBrief, true
	case "contact-form":
		return models.EntryTypeContactForm, true
	}
	return "", false
}
