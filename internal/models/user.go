package models

type User struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// UserPatch carries the fields of a partial user update. Nil means unchanged.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Apply merges the present fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// UserSummary is the reduced user view embedded into bookings and items.
type UserSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
