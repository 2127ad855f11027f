package model

import "strings"

// Child is one child record in a family profile.
type Child struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Grade       string `json:"grade,omitempty"`
	School      string `json:"school,omitempty"`
	Allergies   string `json:"allergies,omitempty"`
	Medications string `json:"medications,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Validate checks the fields required before a child record is submitted.
func (c Child) Validate() error {
	errs := &ValidationErrors{}
	if strings.TrimSpace(c.Name) == "" {
		errs.AddMessage("name", "name is required")
	}
	if strings.TrimSpace(c.DateOfBirth) == "" {
		errs.AddMessage("dateOfBirth", "date of birth is required")
	}
	return errs.Err()
}

// Family is the shared family profile for the two parents.
type Family struct {
	ID                 string  `json:"id,omitempty"`
	FamilyName         string  `json:"familyName"`
	Parent1Email       string  `json:"parent1_email"`
	Parent2Email       string  `json:"parent2_email,omitempty"`
	Children           []Child `json:"children"`
	CustodyArrangement string  `json:"custodyArrangement,omitempty"`
}

// IsLinked reports whether both parents have joined the family.
func (f Family) IsLinked() bool {
	return strings.TrimSpace(f.Parent2Email) != ""
}

// FamilyCreate is the payload for setting up a family profile.
type FamilyCreate struct {
	FamilyName         string `json:"familyName"`
	Parent2Email       string `json:"parent2_email,omitempty"`
	CustodyArrangement string `json:"custodyArrangement,omitempty"`
}

// AdminStats is the aggregate counters shown on the admin dashboard.
type AdminStats struct {
	TotalFamilies    int `json:"totalFamilies"`
	LinkedFamilies   int `json:"linkedFamilies"`
	UnlinkedFamilies int `json:"unlinkedFamilies"`
	TotalUsers       int `json:"totalUsers"`
	TotalChildren    int `json:"totalChildren"`
}

// AdminParent is the parent summary embedded in an admin family row.
type AdminParent struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AdminFamily is one row of the admin families table.
type AdminFamily struct {
	ID                 string       `json:"id"`
	FamilyName         string       `json:"familyName"`
	Parent1            AdminParent  `json:"parent1"`
	Parent2            *AdminParent `json:"parent2"`
	ChildrenCount      int          `json:"childrenCount"`
	CustodyArrangement string       `json:"custodyArrangement"`
	IsLinked           bool         `json:"isLinked"`
}

// AdminUser is one row of the admin users table.
type AdminUser struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	HasFamily  bool   `json:"hasFamily"`
	FamilyName string `json:"familyName,omitempty"`
}
