package domain

import "math"

// Profile is the stored userProfile record. ProfilePic is nil until a
// picture has been picked.
type Profile struct {
	Name        string  `json:"name"`
	Contact     string  `json:"contact"`
	DateOfBirth string  `json:"dateOfBirth"`
	Experience  string  `json:"experience"`
	Skills      string  `json:"skills"`
	ProfilePic  *string `json:"profilePic"`
}

// ProfilePatch carries a partial profile change. Nil fields are left alone;
// ClearProfilePic resets the picture to nil.
type ProfilePatch struct {
	Name            *string `json:"name,omitempty"`
	Contact         *string `json:"contact,omitempty"`
	DateOfBirth     *string `json:"dateOfBirth,omitempty"`
	Experience      *string `json:"experience,omitempty"`
	Skills          *string `json:"skills,omitempty"`
	ProfilePic      *string `json:"profilePic,omitempty"`
	ClearProfilePic bool    `json:"clearProfilePic,omitempty"`
}

// profileFieldCount is the number of fields tracked by Completion.
const profileFieldCount = 6

// Apply returns p with patch merged in.
func (p Profile) Apply(patch ProfilePatch) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Contact != nil {
		p.Contact = *patch.Contact
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Experience != nil {
		p.Experience = *patch.Experience
	}
	if patch.Skills != nil {
		p.Skills = *patch.Skills
	}
	if patch.ClearProfilePic {
		p.ProfilePic = nil
	} else if patch.ProfilePic != nil {
		pic := *patch.ProfilePic
		p.ProfilePic = &pic
	}
	return p
}

// Completion is the share of filled fields as a rounded percentage.
func (p Profile) Completion() int {
	filled := 0
	for _, f := range []string{p.Name, p.Contact, p.DateOfBirth, p.Experience, p.Skills} {
		if f != "" {
			filled++
		}
	}
	if p.ProfilePic != nil && *p.ProfilePic != "" {
		filled++
	}
	return int(math.Round(float64(filled) / profileFieldCount * 100))
}
