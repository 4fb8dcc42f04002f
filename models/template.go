// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// SubjectRole tells whether a subject is the main or an additional part of a
// test template.
type SubjectRole string

const (
	SubjectRoleMain       SubjectRole = "MAIN"
	SubjectRoleAdditional SubjectRole = "ADDITIONAL"
)

// TemplateSubject links a subject to a test template with its role.
type TemplateSubject struct {
	Subject Subject     `json:"subject"`
	Role    SubjectRole `json:"role"`
}

// TestTemplate is a purchasable test composed of one or more subjects.
//
// Duration is in minutes; Price is in the smallest currency unit. Both are
// optional on the wire and decode to 0 when the backend omits them or sends
// null.
type TestTemplate struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Duration  int               `json:"duration"`
	Price     int64             `json:"price"`
	Subjects  []TemplateSubject `json:"subjects"`
	Questions []Question        `json:"questions,omitempty"`
}

// UnmarshalJSON decodes a template and coerces a missing or null duration and
// price to zero.
func (t *TestTemplate) UnmarshalJSON(b []byte) error {
	type wire struct {
		ID        int64             `json:"id"`
		Title     string            `json:"title"`
		Duration  *int              `json:"duration"`
		Price     *int64            `json:"price"`
		Subjects  []TemplateSubject `json:"subjects"`
		Questions []Question        `json:"questions"`
	}

	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*t = TestTemplate{
		ID:        w.ID,
		Title:     w.Title,
		Subjects:  w.Subjects,
		Questions: w.Questions,
	}
	if w.Duration != nil {
		t.Duration = *w.Duration
	}
	if w.Price != nil {
		t.Price = *w.Price
	}

	return nil
}

// MainSubject returns the subject that has the MAIN role, if any.
func (t TestTemplate) MainSubject() (Subject, bool) {
	for _, s := range t.Subjects {
		if s.Role == SubjectRoleMain {
			return s.Subject, true
		}
	}
	return Subject{}, false
}
