package services

import (
	"strings"

	"emdash-brief/pkg/clients/kit"
	"emdash-brief/pkg/clients/notion"
	apperrors "emdash-brief/pkg/errors"
	"emdash-brief/pkg/models"
	"emdash-brief/pkg/schema"
)

// Record statuses written alongside each entry type.
const (
	StatusPendingPayment = "Pending Payment"
	StatusNewLead        = "New Lead"
)

// Database property names.
const (
	PropName        = "Name"
	PropContactName = "Contact Name"
	PropEmail       = "Email"
	PropDescription = "Description"
	PropProjectType = "Project Type"
	PropTimeline    = "Timeline"
	PropEntryType   = "Entry Type"
	PropStatus      = "Status"
)

// Entry is a parsed submission: either a ProjectBrief or a ContactForm.
type Entry interface {
	Type() models.EntryType
	Status() string
	isEntry()
}

type ProjectBrief struct {
	models.ProjectData
}

func (ProjectBrief) Type() models.EntryType { return models.EntryTypeProjectBrief }
func (ProjectBrief) Status() string         { return StatusPendingPayment }
func (ProjectBrief) isEntry()               {}

type ContactForm struct {
	models.ContactData
}

func (ContactForm) Type() models.EntryType { return models.EntryTypeContactForm }
func (ContactForm) Status() string         { return StatusNewLead }
func (ContactForm) isEntry()               {}

// ParseEntry turns the wire request into an Entry. An unknown type, or a
// known type without its data object, is a ValidationError.
func ParseEntry(req models.SubmissionRequest) (Entry, error) {
	switch req.Type {
	case models.EntryTypeProjectBrief:
		if req.ProjectData == nil {
			return nil, apperrors.NewMissingFieldError("projectData")
		}
		return ProjectBrief{ProjectData: req.ProjectData.Trimmed()}, nil
	case models.EntryTypeContactForm:
		if req.ContactData == nil {
			return nil, apperrors.NewMissingFieldError("contactData")
		}
		return ContactForm{ContactData: req.ContactData.Trimmed()}, nil
	default:
		return nil, apperrors.NewValidationError(apperrors.ErrCodeUnknownEntryType,
			"unknown entry type: "+string(req.Type))
	}
}

// Compose maps an entry onto the records database properties. Only Entry
// Type and Status are unconditional; every other property is written only when
// its source answer is non-empty.
func Compose(entry Entry) (notion.Properties, error) {
	b := &propertyBuilder{}

	switch e := entry.(type) {
	case ProjectBrief:
		if e.BusinessName == "" {
			return nil, apperrors.NewMissingFieldError("businessName")
		}
		b.add(PropName, notion.Title(e.BusinessName))
		b.addIf(PropEmail, e.Email, notion.Email)
		b.addIf(PropDescription, projectDescription(e.ProjectData), notion.RichText)
		b.addIf(PropProjectType, e.WhatToCreate, notion.Select)
	case ContactForm:
		if e.BusinessName == "" {
			return nil, apperrors.NewMissingFieldError("businessName")
		}
		b.add(PropName, notion.Title(e.BusinessName))
		b.addIf(PropContactName, e.Name, notion.RichText)
		b.addIf(PropEmail, e.Email, notion.Email)
		b.addIf(PropDescription, e.Description, notion.RichText)
		b.addIf(PropProjectType, e.ProjectType, notion.Select)
		b.addIf(PropTimeline, e.Timeline, notion.Select)
	default:
		return nil, apperrors.NewValidationError(apperrors.ErrCodeUnknownEntryType, "unsupported entry")
	}

	b.add(PropEntryType, notion.Select(string(entry.Type())))
	b.add(PropStatus, notion.Status(entry.Status()))

	return b.props, nil
}

type propertyBuilder struct {
	props notion.Properties
}

func (b *propertyBuilder) add(name string, v notion.Value) {
	b.props = append(b.props, notion.Property{Name: name, Value: v})
}

func (b *propertyBuilder) addIf(name, source string, wrap func(string) notion.Value) {
	if source != "" {
		b.add(name, wrap(source))
	}
}

// projectDescription joins the non-empty answers, one labelled line each, in
// questionnaire order.
func projectDescription(p models.ProjectData) string {
	lines := make([]string, 0, 4)
	for _, part := range []struct{ label, value string }{
		{"Creating", p.WhatToCreate},
		{"Audience", p.WhoIsItFor},
		{"Goal", p.Goal},
		{"Feeling", p.Feeling},
	} {
		if part.value != "" {
			lines = append(lines, part.label+": "+part.value)
		}
	}
	return strings.Join(lines, "\n")
}

// Slug lowercases s and replaces only its first space with a hyphen, so
// "Marketing Materials Kit" becomes "marketing-materials kit". Existing tags
// in the mailing list depend on this exact form.
func Slug(s string) string {
	return strings.Replace(strings.ToLower(s), " ", "-", 1)
}

// Tags derives the mailing-list tags: entry type, status, project type.
func Tags(entry Entry) []string {
	var projectType string
	switch e := entry.(type) {
	case ProjectBrief:
		projectType = e.WhatToCreate
	case ContactForm:
		projectType = e.ProjectType
	}
	if projectType == "" {
		projectType = schema.DefaultProjectType
	}

	return []string{
		Slug(string(entry.Type())),
		Slug(entry.Status()),
		Slug(projectType),
	}
}

// Subscriber builds the mailing-list payload for an entry.
func Subscriber(entry Entry) kit.Subscriber {
	sub := kit.Subscriber{Tags: Tags(entry)}

	switch e := entry.(type) {
	case ProjectBrief:
		sub.Email = e.Email
		sub.BusinessName = e.BusinessName
	case ContactForm:
		sub.Email = e.Email
		sub.BusinessName = e.BusinessName
		if fields := strings.Fields(e.Name); len(fields) > 0 {
			sub.FirstName = fields[0]
		}
	}

	return sub
}

// EntryEmail returns the contact email of an entry.
func EntryEmail(entry Entry) string {
	switch e := entry.(type) {
	case ProjectBrief:
		return e.Email
	case ContactForm:
		return e.Email
	}
	return ""
}
