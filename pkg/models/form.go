package models

import "strings"

// EntryType is the wire discriminator of a submission.
type EntryType string

const (
	EntryTypeProjectBrief EntryType = "Project Brief"
	EntryTypeContactForm  EntryType = "Contact Form"
)

// ProjectData holds the answers of the project brief questionnaire.
type ProjectData struct {
	WhatToCreate string `json:"whatToCreate"`
	WhoIsItFor   string `json:"whoIsItFor"`
	Goal         string `json:"goal"`
	Feeling      string `json:"feeling"`
	BusinessName string `json:"businessName,omitempty"`
	Email        string `json:"email"`
}

// Trimmed returns a copy with surrounding whitespace removed from every answer.
func (p ProjectData) Trimmed() ProjectData {
	return ProjectData{
		WhatToCreate: strings.TrimSpace(p.WhatToCreate),
		WhoIsItFor:   strings.TrimSpace(p.WhoIsItFor),
		Goal:         strings.TrimSpace(p.Goal),
		Feeling:      strings.TrimSpace(p.Feeling),
		BusinessName: strings.TrimSpace(p.BusinessName),
		Email:        strings.TrimSpace(p.Email),
	}
}

// ContactData holds a "get in touch" form.
type ContactData struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
	ProjectType  string `json:"projectType"`
	Description  string `json:"description"`
	Timeline     string `json:"timeline"`
}

// Trimmed returns a copy with surrounding whitespace removed from every short
// answer. Description is kept verbatim unless it is blank, in which case it
// becomes empty.
func (c ContactData) Trimmed() ContactData {
	description := c.Description
	if strings.TrimSpace(description) == "" {
		description = ""
	}
	return ContactData{
		Name:         strings.TrimSpace(c.Name),
		Email:        strings.TrimSpace(c.Email),
		BusinessName: strings.TrimSpace(c.BusinessName),
		ProjectType:  strings.TrimSpace(c.ProjectType),
		Description:  description,
		Timeline:     strings.TrimSpace(c.Timeline),
	}
}

// SubmissionRequest is the body accepted by the submission endpoint.
// Exactly one of ProjectData and ContactData is expected, selected by Type.
type SubmissionRequest struct {
	Type        EntryType    `json:"type"`
	ProjectData *ProjectData `json:"projectData,omitempty"`
	ContactData *ContactData `json:"contactData,omitempty"`
}

// SubmissionResult is returned to the caller after the record was created.
type SubmissionResult struct {
	Success     bool   `json:"success"`
	ID          string `json:"id"`
	KitAdded    bool   `json:"kitAdded"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}
